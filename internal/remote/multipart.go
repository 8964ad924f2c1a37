package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"github.com/go-faster/errors"

	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
)

// Multipart field names expected by the backend.
const (
	fieldData  = "data"
	fieldImage = "image"
	fieldPDF   = "pdf"
)

type multipartForm struct {
	body        *bytes.Buffer
	contentType string
}

type filePart struct {
	field string
	file  *product.File
}

func newMultipartForm(meta any, parts ...filePart) (*multipartForm, error) {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, errors.Wrap(err, "encode metadata")
	}

	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	if err := w.WriteField(fieldData, string(metaJSON)); err != nil {
		return nil, errors.Wrap(err, "write metadata part")
	}

	for _, p := range parts {
		if p.file == nil {
			continue
		}
		contentType := p.file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.field, p.file.Name))
		h.Set("Content-Type", contentType)

		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, errors.Wrapf(err, "create %s part", p.field)
		}
		if _, err := pw.Write(p.file.Data); err != nil {
			return nil, errors.Wrapf(err, "write %s part", p.field)
		}
	}

	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "close multipart writer")
	}
	return &multipartForm{body: buf, contentType: w.FormDataContentType()}, nil
}

// placeholderImage is substituted when a product is created without an
// image, because the backend rejects product creation lacking the image
// part. Remove once the backend treats the image as optional.
func placeholderImage() *product.File {
	return &product.File{
		Name:        "placeholder.png",
		ContentType: "image/png",
		Data:        []byte{},
	}
}
