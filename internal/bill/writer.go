package bill

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/smallbiznis/retailpos/internal/config"
	obsmetrics "github.com/smallbiznis/retailpos/internal/observability/metrics"
	"github.com/smallbiznis/retailpos/internal/pricing"
	"github.com/smallbiznis/retailpos/pkg/apperror"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Config     config.Config
	Log        *zap.Logger
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

// Writer stores one file per enabled renderer under the bills directory.
type Writer struct {
	dir        string
	storeName  string
	renderers  []Renderer
	log        *zap.Logger
	obsMetrics *obsmetrics.Metrics
}

func NewWriter(p Params) *Writer {
	formats := p.Config.Bill.Formats
	if len(formats) == 0 {
		formats = []string{config.BillFormatText}
	}
	var renderers []Renderer
	for _, f := range formats {
		switch f {
		case config.BillFormatText:
			renderers = append(renderers, TextRenderer{})
		case config.BillFormatPDF:
			renderers = append(renderers, PDFRenderer{Formatter: pricing.NewFormatter(p.Config.Store.CurrencySymbol)})
		}
	}
	return New(p.Config.Data.BillsPath(), p.Config.Store.Name, p.Log, p.ObsMetrics, renderers...)
}

func New(dir, storeName string, log *zap.Logger, metrics *obsmetrics.Metrics, renderers ...Renderer) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{
		dir:        dir,
		storeName:  storeName,
		renderers:  renderers,
		log:        log.Named("bill.writer"),
		obsMetrics: metrics,
	}
}

// StoreName is printed in bill headers.
func (w *Writer) StoreName() string {
	return w.storeName
}

// Write renders b with every renderer and returns the paths that were
// written. A failing format does not stop the others; all failures are
// joined into the returned error.
func (w *Writer) Write(ctx context.Context, b Bill) ([]string, error) {
	if b.StoreName == "" {
		b.StoreName = w.storeName
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		for _, r := range w.renderers {
			w.obsMetrics.RecordBillFailure(r.Format())
		}
		return nil, apperror.IO("mkdir", w.dir, err)
	}

	var (
		paths []string
		errs  []error
	)
	for _, r := range w.renderers {
		path := filepath.Join(w.dir, FileName(b.Timestamp, r.Extension()))
		data, err := r.Render(ctx, b)
		if err == nil {
			err = renameio.WriteFile(path, data, 0o644)
		}
		if err != nil {
			w.obsMetrics.RecordBillFailure(r.Format())
			w.log.Warn("bill not written", zap.String("format", r.Format()), zap.String("path", path), zap.Error(err))
			errs = append(errs, apperror.IO("write", path, err))
			continue
		}
		paths = append(paths, path)
	}
	return paths, errors.Join(errs...)
}
