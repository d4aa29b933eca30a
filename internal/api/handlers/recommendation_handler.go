package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/vacayzen/product-recommendation/internal/domain"
	"github.com/vacayzen/product-recommendation/internal/ingest"
	"github.com/vacayzen/product-recommendation/internal/pipeline/recommendation"
	"github.com/vacayzen/product-recommendation/internal/service"
)

const dateLayout = "2006-01-02"

// badRequestError marks failures caused by the request itself.
type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

func badRequest(format string, args ...interface{}) error {
	return &badRequestError{err: fmt.Errorf(format, args...)}
}

type RecommendationHandler struct {
	service        *service.RecommendationService
	resolver       *ingest.Resolver
	maxUploadBytes int64
	now            func() time.Time
}

func NewRecommendationHandler(svc *service.RecommendationService, resolver *ingest.Resolver, maxUploadBytes int64) *RecommendationHandler {
	if resolver == nil {
		resolver = &ingest.Resolver{}
	}
	return &RecommendationHandler{
		service:        svc,
		resolver:       resolver,
		maxUploadBytes: maxUploadBytes,
		now:            time.Now,
	}
}

// Options lists the categories and assets found in the rentals table.
func (h *RecommendationHandler) Options(c *gin.Context) {
	form, err := h.parseForm(c)
	if err != nil {
		writeError(c, err)
		return
	}
	defer form.close()

	rentals, err := form.source(ingest.TableRentals)
	if err != nil {
		writeError(c, err)
		return
	}
	if rentals == nil {
		writeError(c, badRequest("rentals file or rentals_uri is required"))
		return
	}

	opts, err := h.service.Options(c.Request.Context(), rentals)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, opts)
}

// Analyze computes the stocking recommendation for one asset.
func (h *RecommendationHandler) Analyze(c *gin.Context) {
	form, err := h.parseForm(c)
	if err != nil {
		writeError(c, err)
		return
	}
	defer form.close()

	req, err := h.parseRequest(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var sources ingest.DatasetSources
	if sources.Rentals, err = form.source(ingest.TableRentals); err != nil {
		writeError(c, err)
		return
	}
	if sources.Rentals == nil {
		writeError(c, badRequest("rentals file or rentals_uri is required"))
		return
	}
	if sources.Costs, err = form.source(ingest.TableCosts); err != nil {
		writeError(c, err)
		return
	}
	if sources.Inventory, err = form.source(ingest.TableInventory); err != nil {
		writeError(c, err)
		return
	}

	analysis, err := h.service.Analyze(c.Request.Context(), sources, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

func (h *RecommendationHandler) parseRequest(c *gin.Context) (domain.AnalysisRequest, error) {
	defaultStart, defaultEnd := recommendation.DefaultRange(h.now())

	req := domain.AnalysisRequest{
		Category:   strings.TrimSpace(c.PostForm("category")),
		Asset:      strings.TrimSpace(c.PostForm("asset")),
		Start:      defaultStart,
		End:        defaultEnd,
		RentalRate: decimal.Zero,
	}

	if v := strings.TrimSpace(c.PostForm("start")); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return req, badRequest("invalid start date %q, expected YYYY-MM-DD", v)
		}
		req.Start = t
	}
	if v := strings.TrimSpace(c.PostForm("end")); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return req, badRequest("invalid end date %q, expected YYYY-MM-DD", v)
		}
		req.End = t
	}
	if v := strings.TrimSpace(c.PostForm("rental_rate")); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return req, badRequest("invalid rental_rate %q", v)
		}
		req.RentalRate = rate
	}
	if v := strings.TrimSpace(c.PostForm("acquire_cost")); v != "" {
		cost, err := decimal.NewFromString(v)
		if err != nil {
			return req, badRequest("invalid acquire_cost %q", v)
		}
		req.AcquireCost = &cost
	}

	return req, nil
}

type uploadForm struct {
	form     *multipart.Form
	resolver *ingest.Resolver
	uris     map[string]string
	closers  []io.Closer
}

func (h *RecommendationHandler) parseForm(c *gin.Context) (*uploadForm, error) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, badRequest("invalid form data: %v", err)
	}

	uris := make(map[string]string)
	for _, table := range []string{ingest.TableRentals, ingest.TableCosts, ingest.TableInventory} {
		uris[table] = strings.TrimSpace(c.PostForm(table + "_uri"))
	}

	return &uploadForm{form: form, resolver: h.resolver, uris: uris}, nil
}

// source returns nil, nil when the table was neither uploaded nor referenced.
func (f *uploadForm) source(table string) (ingest.Source, error) {
	if files := f.form.File[table]; len(files) > 0 {
		fh := files[0]
		file, err := fh.Open()
		if err != nil {
			return nil, badRequest("failed to open uploaded %s file: %v", table, err)
		}
		f.closers = append(f.closers, file)
		return &ingest.ReaderSource{
			Table:    table,
			Filename: fh.Filename,
			Reader:   file,
			Encoding: f.resolver.Encoding,
		}, nil
	}

	if uri := f.uris[table]; uri != "" {
		src, err := f.resolver.Resolve(table, uri)
		if err != nil {
			return nil, &badRequestError{err: err}
		}
		return src, nil
	}

	return nil, nil
}

func (f *uploadForm) close() {
	for _, c := range f.closers {
		c.Close()
	}
	if f.form != nil {
		_ = f.form.RemoveAll()
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}

	body := gin.H{"error": err.Error()}
	var missing *domain.MissingColumnError
	if errors.As(err, &missing) {
		body["table"] = missing.Table
		body["missing_columns"] = missing.Columns
	}

	c.JSON(status, body)
}

func statusFor(err error) int {
	var missing *domain.MissingColumnError
	var bad *badRequestError
	switch {
	case errors.As(err, &missing):
		return http.StatusUnprocessableEntity
	case errors.As(err, &bad),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrUnknownAsset),
		errors.Is(err, domain.ErrNegativeRate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
