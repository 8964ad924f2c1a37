package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"github.com/meetjaka/voltherm-sub000/internal/datasource"
	"github.com/meetjaka/voltherm-sub000/internal/domain/auth"
	"github.com/meetjaka/voltherm-sub000/internal/domain/category"
	"github.com/meetjaka/voltherm-sub000/internal/domain/certificate"
	"github.com/meetjaka/voltherm-sub000/internal/domain/contact"
	"github.com/meetjaka/voltherm-sub000/internal/domain/inquiry"
	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var creds auth.Credentials
	if err := h.decodeJSON(w, r, &creds); err != nil {
		writeErr(w, r, err)
		return
	}
	src, err := h.admin.Login(r.Context(), creds)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]string{"username": creds.Username}, src)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.admin.Logout(r.Context())
	writeData(w, r, http.StatusOK, nil, "")
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.admin.Profile(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, p, "")
}

func (h *Handler) listInquiries(w http.ResponseWriter, r *http.Request) {
	list, src, err := h.admin.Inquiries(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, list, src)
}

func (h *Handler) updateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status inquiry.Status `json:"status"`
		Notes  string         `json:"notes"`
	}
	if err := h.decodeJSON(w, r, &body); err != nil {
		writeErr(w, r, err)
		return
	}
	in, src, err := h.admin.UpdateInquiryStatus(r.Context(), r.PathValue("id"), body.Status, body.Notes)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, in, src)
}

func (h *Handler) deleteInquiry(w http.ResponseWriter, r *http.Request) {
	src, err := h.admin.DeleteInquiry(r.Context(), r.PathValue("id"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, nil, src)
}

// createProduct accepts a multipart form with the product JSON in "data"
// and optional "image" and "pdf" files. twoStep=true creates the record
// before uploading files.
func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var p product.Product
	files, err := h.readProductForm(w, r, &p)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	if twoStep, _ := strconv.ParseBool(r.URL.Query().Get("twoStep")); twoStep {
		res, err := h.admin.CreateProductTwoStep(r.Context(), p, files)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		out := struct {
			Product     *product.Product `json:"product"`
			UploadError string           `json:"uploadError,omitempty"`
		}{Product: res.Product}
		if res.UploadErr != nil {
			out.UploadError = res.UploadErr.Error()
		}
		writeData(w, r, http.StatusCreated, out, res.Source)
		return
	}

	created, src, err := h.admin.CreateProduct(r.Context(), p, files)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, created, src)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var p product.Product
	files, err := h.readProductForm(w, r, &p)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	addressProduct(&p, r.PathValue("id"))

	updated, src, err := h.admin.UpdateProduct(r.Context(), p, files)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, updated, src)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	var p product.Product
	addressProduct(&p, r.PathValue("id"))
	src, err := h.admin.DeleteProduct(r.Context(), p)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, nil, src)
}

func (h *Handler) deleteProductPDF(w http.ResponseWriter, r *http.Request) {
	var p product.Product
	addressProduct(&p, r.PathValue("id"))
	src, err := h.admin.DeleteProductPDF(r.Context(), p)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, nil, src)
}

// saveProducts replaces the whole catalog locally.
func (h *Handler) saveProducts(w http.ResponseWriter, r *http.Request) {
	var list []product.Product
	if err := h.decodeJSON(w, r, &list); err != nil {
		writeErr(w, r, err)
		return
	}
	if err := h.admin.SaveProducts(r.Context(), list); err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, list, datasource.SourceLocal)
}

func (h *Handler) createCertificate(w http.ResponseWriter, r *http.Request) {
	var c certificate.Certificate
	image, err := h.readCertificateForm(w, r, &c)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	created, src, err := h.admin.CreateCertificate(r.Context(), c, image)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, created, src)
}

func (h *Handler) updateCertificate(w http.ResponseWriter, r *http.Request) {
	var c certificate.Certificate
	image, err := h.readCertificateForm(w, r, &c)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	c.ID = r.PathValue("id")
	updated, src, err := h.admin.UpdateCertificate(r.Context(), c, image)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, updated, src)
}

func (h *Handler) deleteCertificate(w http.ResponseWriter, r *http.Request) {
	src, err := h.admin.DeleteCertificate(r.Context(), r.PathValue("id"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, nil, src)
}

func (h *Handler) updateContactInfo(w http.ResponseWriter, r *http.Request) {
	var info contact.Info
	if err := h.decodeJSON(w, r, &info); err != nil {
		writeErr(w, r, err)
		return
	}
	updated, src, err := h.admin.UpdateContactInfo(r.Context(), info)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, updated, src)
}

func (h *Handler) createOffice(w http.ResponseWriter, r *http.Request) {
	var o contact.Office
	if err := h.decodeJSON(w, r, &o); err != nil {
		writeErr(w, r, err)
		return
	}
	created, src, err := h.admin.CreateOffice(r.Context(), o)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, created, src)
}

func (h *Handler) updateOffice(w http.ResponseWriter, r *http.Request) {
	var o contact.Office
	if err := h.decodeJSON(w, r, &o); err != nil {
		writeErr(w, r, err)
		return
	}
	o.ID = r.PathValue("id")
	updated, src, err := h.admin.UpdateOffice(r.Context(), o)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, updated, src)
}

func (h *Handler) deleteOffice(w http.ResponseWriter, r *http.Request) {
	src, err := h.admin.DeleteOffice(r.Context(), r.PathValue("id"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, nil, src)
}

func (h *Handler) saveSections(w http.ResponseWriter, r *http.Request) {
	var s category.Sections
	if err := h.decodeJSON(w, r, &s); err != nil {
		writeErr(w, r, err)
		return
	}
	saved, src, err := h.admin.SaveSections(r.Context(), s)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, saved, src)
}

// addressProduct sets the product identity from a path segment: a positive
// integer is a local id, anything else a backend id.
func addressProduct(p *product.Product, id string) {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > 0 {
		p.ID = n
		return
	}
	p.ID = 0
	p.BackendID = id
}

// readProductForm decodes a product from a JSON body or from a multipart
// form with a "data" field.
func (h *Handler) readProductForm(w http.ResponseWriter, r *http.Request, p *product.Product) (product.Files, error) {
	if !isMultipart(r) {
		return product.Files{}, h.decodeJSON(w, r, p)
	}
	form, err := h.parseForm(w, r, p)
	if err != nil {
		return product.Files{}, err
	}
	var files product.Files
	if files.Image, err = formFile(form, "image"); err != nil {
		return product.Files{}, err
	}
	if files.PDF, err = formFile(form, "pdf"); err != nil {
		return product.Files{}, err
	}
	return files, nil
}

func (h *Handler) readCertificateForm(w http.ResponseWriter, r *http.Request, c *certificate.Certificate) (*product.File, error) {
	if !isMultipart(r) {
		return nil, h.decodeJSON(w, r, c)
	}
	form, err := h.parseForm(w, r, c)
	if err != nil {
		return nil, err
	}
	return formFile(form, "image")
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request, meta any) (*multipart.Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		return nil, invalid("malformed multipart form", err)
	}
	data := r.MultipartForm.Value["data"]
	if len(data) == 0 {
		return nil, invalid(`multipart form lacks the "data" field`, nil)
	}
	if err := json.Unmarshal([]byte(data[0]), meta); err != nil {
		return nil, invalid(`malformed "data" field`, err)
	}
	return r.MultipartForm, nil
}

// formFile reads the named file part, or returns nil when it is absent.
func formFile(form *multipart.Form, name string) (*product.File, error) {
	headers := form.File[name]
	if len(headers) == 0 {
		return nil, nil
	}
	fh := headers[0]
	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", name)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	return &product.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
