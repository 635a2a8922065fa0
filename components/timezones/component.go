package timezones

import "net/http"

// Component bundles a record set with the search and offset handlers.
type Component struct {
	opts Options
}

func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Records returns the configured records or the bundled dataset.
func (c *Component) Records() ([]Record, error) {
	return resolveRecords(c.Options())
}

// Search runs a query the same way the HTTP handler does.
func (c *Component) Search(query string, limit int) ([]Record, error) {
	opts := c.Options()
	records, err := resolveRecords(opts)
	if err != nil {
		return nil, err
	}
	return Search(records, query, limit, opts), nil
}

// Table indexes the component's records by location.
func (c *Component) Table() (*Table, error) {
	records, err := c.Records()
	if err != nil {
		return nil, err
	}
	return NewTable(records), nil
}

func (c *Component) Handler() http.Handler {
	return HandlerWithOptions(c.Options())
}

func (c *Component) OffsetHandler() http.Handler {
	return OffsetHandlerWithOptions(c.Options())
}

func (c *Component) RegisterRoutes(mux Mux, basePath string) (Routes, error) {
	return RegisterRoutesWithOptions(mux, basePath, c.Options())
}

func resolveRecords(opts Options) ([]Record, error) {
	if opts.Records != nil {
		return opts.Records, nil
	}
	return DefaultRecords()
}
