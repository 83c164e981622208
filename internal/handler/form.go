package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"maitri-medico/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const imageField = "image"

// productForm is the product/request body. It arrives as multipart (with an
// optional image file), urlencoded, or JSON.
type productForm struct {
	Type      string           `json:"type"`
	ProductID string           `json:"product_id"`
	Name      *string          `json:"name"`
	Price     *decimal.Decimal `json:"price"`
	Category  *string          `json:"category"`
	Image     *string          `json:"image"`
}

func (f *productForm) fields() service.ProductFields {
	return service.ProductFields{
		Name:     trimmed(f.Name),
		Price:    f.Price,
		Category: trimmed(f.Category),
		Image:    f.Image,
	}
}

func (f *productForm) productID() (*uuid.UUID, error) {
	if f.ProductID == "" {
		return nil, nil
	}
	id, err := uuid.Parse(f.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product_id", service.ErrValidation)
	}
	return &id, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", service.ErrValidation, fmt.Sprintf(format, args...))
}

func parseProductForm(c *fiber.Ctx, maxUpload int64) (*productForm, *service.Upload, error) {
	form := &productForm{}
	ctype := strings.ToLower(string(c.Request().Header.ContentType()))

	switch {
	case strings.HasPrefix(ctype, fiber.MIMEMultipartForm):
		mf, err := c.MultipartForm()
		if err != nil {
			return nil, nil, invalidf("invalid multipart form")
		}
		if err := fillForm(form, func(key string) string {
			if vals := mf.Value[key]; len(vals) > 0 {
				return vals[0]
			}
			return ""
		}); err != nil {
			return nil, nil, err
		}
		up, err := readUpload(mf, maxUpload)
		if err != nil {
			return nil, nil, err
		}
		return form, up, nil

	case strings.HasPrefix(ctype, fiber.MIMEApplicationJSON):
		if len(c.Body()) == 0 {
			return form, nil, nil
		}
		if err := c.BodyParser(form); err != nil {
			return nil, nil, invalidf("invalid JSON body")
		}
		return form, nil, nil

	default:
		if err := fillForm(form, func(key string) string { return c.FormValue(key) }); err != nil {
			return nil, nil, err
		}
		return form, nil, nil
	}
}

// fillForm reads text fields. Empty values count as unspecified.
func fillForm(form *productForm, get func(string) string) error {
	opt := func(key string) *string {
		v := strings.TrimSpace(get(key))
		if v == "" {
			return nil
		}
		return &v
	}

	form.Type = strings.TrimSpace(get("type"))
	form.ProductID = strings.TrimSpace(get("product_id"))
	form.Name = opt("name")
	form.Category = opt("category")
	form.Image = opt(imageField)
	if raw := opt("price"); raw != nil {
		d, err := decimal.NewFromString(*raw)
		if err != nil {
			return invalidf("price must be a number")
		}
		form.Price = &d
	}
	return nil
}

func readUpload(mf *multipart.Form, maxUpload int64) (*service.Upload, error) {
	files := mf.File[imageField]
	if len(files) == 0 {
		return nil, nil
	}
	fh := files[0]
	if fh.Size > maxUpload {
		return nil, invalidf("image exceeds the %d MB limit", maxUpload>>20)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, invalidf("unreadable image upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUpload+1))
	if err != nil {
		return nil, invalidf("unreadable image upload")
	}
	if int64(len(data)) > maxUpload {
		return nil, invalidf("image exceeds the %d MB limit", maxUpload>>20)
	}
	return &service.Upload{Filename: fh.Filename, Data: data}, nil
}
