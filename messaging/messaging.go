package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"product-extractor/internal/types"
	"product-extractor/monitor"
	perrors "product-extractor/pkg/errors"
)

// Commands understood by the dispatcher
const (
	CommandExtractProduct  = "extractProduct"
	CommandAddToWatchList  = "addToWatchList"
	CommandGetWatchList    = "getWatchList"
	CommandStartMonitoring = "startMonitoring"
	CommandStopMonitoring  = "stopMonitoring"
	CommandCheckNow        = "checkNow"
)

// Request is one command sent to the engine
type Request struct {
	Command    string               `json:"command" validate:"required,oneof=extractProduct addToWatchList getWatchList startMonitoring stopMonitoring checkNow"`
	RequestID  string               `json:"requestId,omitempty" validate:"omitempty,max=128"`
	URL        string               `json:"url,omitempty" validate:"omitempty,url"`
	Product    *types.ProductRecord `json:"product,omitempty"`
	IntervalMs int64                `json:"intervalMs,omitempty" validate:"gte=0"`
}

// Response answers a Request and carries the same request id
type Response struct {
	RequestID string               `json:"requestId"`
	Success   bool                 `json:"success"`
	Product   *types.ProductRecord `json:"product,omitempty"`
	Entry     *types.WatchEntry    `json:"entry,omitempty"`
	WatchList []types.WatchEntry   `json:"watchList,omitempty"`
	Result    *monitor.Result      `json:"result,omitempty"`
	Error     string               `json:"error,omitempty"`
}

// Dispatcher executes requests against the extractor and the monitor
type Dispatcher struct {
	extractor monitor.Extractor
	loader    monitor.Loader
	monitor   *monitor.Monitor
	validate  *validator.Validate
	logger    types.Logger
}

func NewDispatcher(extractor monitor.Extractor, loader monitor.Loader, mon *monitor.Monitor, logger types.Logger) *Dispatcher {
	return &Dispatcher{
		extractor: extractor,
		loader:    loader,
		monitor:   mon,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Handle runs req and always returns a response for it. The error, if any,
// is also reported in Response.Error; transports use it to pick a status.
func (d *Dispatcher) Handle(ctx context.Context, req Request) (Response, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	resp := Response{RequestID: req.RequestID}

	if err := d.validateRequest(req); err != nil {
		resp.Error = err.Error()
		return resp, err
	}

	d.logger.Debugf("Handling %s (%s)", req.Command, req.RequestID)

	var err error
	switch req.Command {
	case CommandExtractProduct:
		resp.Product, err = d.extract(ctx, req.URL)

	case CommandAddToWatchList:
		record := req.Product
		if record == nil {
			record, err = d.extract(ctx, req.URL)
		}
		if err == nil {
			resp.Entry, err = d.monitor.AddOrUpdate(ctx, record)
		}

	case CommandGetWatchList:
		resp.WatchList, err = d.monitor.List(ctx)

	case CommandStartMonitoring:
		interval := time.Duration(req.IntervalMs) * time.Millisecond
		// the schedule outlives the request that started it
		err = d.monitor.Start(context.WithoutCancel(ctx), interval)

	case CommandStopMonitoring:
		d.monitor.Stop()

	case CommandCheckNow:
		var result monitor.Result
		result, err = d.monitor.CheckAll(ctx)
		resp.Result = &result
	}

	if err != nil {
		d.logger.Warnf("Command %s (%s) failed: %v", req.Command, req.RequestID, err)
		resp.Error = err.Error()
		return resp, err
	}
	resp.Success = true
	return resp, nil
}

func (d *Dispatcher) validateRequest(req Request) error {
	if err := d.validate.Struct(req); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			return perrors.NewValidation("request", validationMessage(validateErrs))
		}
		return perrors.NewValidation("request", err.Error())
	}

	switch req.Command {
	case CommandExtractProduct:
		if req.URL == "" {
			return perrors.NewValidation("url", "field url is required for "+req.Command)
		}
	case CommandAddToWatchList:
		if req.URL == "" && (req.Product == nil || req.Product.URL == "") {
			return perrors.NewValidation("product", "a product with a url, or a url, is required")
		}
	}
	return nil
}

func (d *Dispatcher) extract(ctx context.Context, url string) (*types.ProductRecord, error) {
	page, err := d.loader.Load(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", perrors.ErrPageUnavailable, err)
	}
	defer page.Close()

	return d.extractor.Extract(ctx, page)
}

func validationMessage(errs validator.ValidationErrors) string {
	var msgs []string
	for _, err := range errs {
		field := strings.ToLower(err.Field()[:1]) + err.Field()[1:]
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", field))
		case "url":
			msgs = append(msgs, fmt.Sprintf("field %s is not a valid URL", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of: %s", field, err.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", field))
		}
	}
	return strings.Join(msgs, ", ")
}
