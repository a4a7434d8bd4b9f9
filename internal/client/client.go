// Package client talks to the sticker API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sticker-backend/internal/capture"
	"sticker-backend/internal/label"
	"sticker-backend/internal/models"
)

const DefaultTimeout = 30 * time.Second

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error: %d", e.Status)
	}
	return fmt.Sprintf("HTTP error: %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client for the API mounted at baseURL, e.g.
// http://localhost:5000/api.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("could not build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		json.Unmarshal(data, &e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = data
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out)
}

type stickerEnvelope struct {
	Success  bool                   `json:"success"`
	Data     []models.StickerRecord `json:"data"`
	ImageURL string                 `json:"image_url"`
}

// UploadImage sends a sticker image with its metadata and returns the stored
// image's public URL.
func (c *Client) UploadImage(ctx context.Context, png []byte, meta capture.Meta) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", "sticker_"+meta.Barcode+".png")
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(png); err != nil {
		return "", err
	}
	fields := [][2]string{
		{"title", meta.Title},
		{"sku", meta.SKU},
		{"price", meta.Price},
		{"barcode", meta.Barcode},
		{"format", string(meta.Format)},
		{"source", string(meta.Source)},
		{"quantity", strconv.Itoa(meta.Quantity)},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	var env stickerEnvelope
	if err := c.do(ctx, http.MethodPost, "/stickers/upload-image", &buf, mw.FormDataContentType(), &env); err != nil {
		return "", err
	}
	return env.ImageURL, nil
}

// StickerInput is the body of a sticker save.
type StickerInput struct {
	Title    string               `json:"title"`
	SKU      string               `json:"sku"`
	Price    string               `json:"price"`
	Barcode  string               `json:"barcode"`
	Format   models.BarcodeFormat `json:"format"`
	Source   models.StickerSource `json:"source"`
	Quantity int                  `json:"quantity"`
	ImageURL string               `json:"image_url,omitempty"`
}

func (c *Client) SaveSticker(ctx context.Context, in StickerInput) (models.StickerRecord, error) {
	var env stickerEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/stickers/save", in, &env); err != nil {
		return models.StickerRecord{}, err
	}
	if len(env.Data) == 0 {
		return models.StickerRecord{}, fmt.Errorf("save returned no sticker")
	}
	return env.Data[0], nil
}

func (c *Client) ListStickers(ctx context.Context) ([]models.StickerRecord, error) {
	var env stickerEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/stickers", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) DeleteSticker(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/stickers/%d", id), nil, nil)
}

// ExportStickersCSV returns the raw CSV export.
func (c *Client) ExportStickersCSV(ctx context.Context) ([]byte, error) {
	var data []byte
	err := c.do(ctx, http.MethodGet, "/stickers/export.csv", nil, "", &data)
	return data, err
}

// ProductInput is the body of a product create or update. Nil fields are
// left out so an update keeps their stored values.
type ProductInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
	Barcode     *string `json:"barcode,omitempty"`
	Category    *string `json:"category,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.doJSON(ctx, http.MethodGet, "/products", nil, &products)
	return products, err
}

func (c *Client) GetProduct(ctx context.Context, id uint) (models.Product, error) {
	var p models.Product
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &p)
	return p, err
}

func (c *Client) GetProductByBarcode(ctx context.Context, barcode string) (models.Product, error) {
	var p models.Product
	err := c.doJSON(ctx, http.MethodGet, "/products/barcode/"+url.PathEscape(barcode), nil, &p)
	return p, err
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	var p models.Product
	err := c.doJSON(ctx, http.MethodPost, "/products", in, &p)
	return p, err
}

func (c *Client) UpdateProduct(ctx context.Context, id uint, in ProductInput) (models.Product, error) {
	var p models.Product
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), in, &p)
	return p, err
}

func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

// PrintLink is a signed link to a server-rendered print document.
type PrintLink struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// CreatePrintLink asks the server for a print link for saved stickers.
// Copies of zero prints each sticker's saved quantity.
func (c *Client) CreatePrintLink(ctx context.Context, barcodes []string, layout label.Layout, copies int) (PrintLink, error) {
	var link PrintLink
	err := c.doJSON(ctx, http.MethodPost, "/print/jobs", map[string]any{
		"barcodes": barcodes,
		"layout":   layout,
		"copies":   copies,
	}, &link)
	return link, err
}
