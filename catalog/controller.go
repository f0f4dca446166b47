// Package catalog holds the catalog browser: products, the form that adds
// them, the controller owning that state and the card renderer.
package catalog

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/davidroman0O/firm-catalog/firm"
)

// LoadDelay is how long the mock fetch takes.
const LoadDelay = 2 * time.Second

// Controller owns the catalog state. Every transition runs on the
// controller's reactive loop and re-renders the view once.
type Controller struct {
	owner   *firm.Owner
	dispose firm.CleanUp
	wait    func()

	state *firm.SignalImpl[State]
	view  *firm.MemoImpl[View]

	log   *zap.Logger
	alert func(message string)
}

type options struct {
	clock  firm.Clock
	delay  time.Duration
	source Source
	log    *zap.Logger
	alert  func(message string)
}

// Option configures a Controller.
type Option func(*options)

// WithClock schedules the initial load on clock.
func WithClock(clock firm.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithLoadDelay overrides LoadDelay.
func WithLoadDelay(d time.Duration) Option {
	return func(o *options) {
		o.delay = d
	}
}

// WithSource replaces the mock data source.
func WithSource(source Source) Option {
	return func(o *options) {
		if source != nil {
			o.source = source
		}
	}
}

// WithLogger sets the logger. The global zap logger is used otherwise.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithAlert sets the blocking notification shown when a submission is
// rejected.
func WithAlert(alert func(message string)) Option {
	return func(o *options) {
		o.alert = alert
	}
}

// NewController mounts a controller: it starts in the loading state and
// schedules the one and only load of the source.
func NewController(opts ...Option) *Controller {
	o := options{
		clock:  firm.SystemClock{},
		delay:  LoadDelay,
		source: MockSource,
		log:    zap.L(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Controller{
		log:   o.log.Named("catalog"),
		alert: o.alert,
	}
	if c.alert == nil {
		c.alert = func(message string) {
			c.log.Warn("alert", zap.String("message", message))
		}
	}

	c.dispose, c.wait = firm.Root(func(owner *firm.Owner) firm.CleanUp {
		c.owner = owner
		c.state = firm.Signal(owner, Initial())
		c.view = firm.Memo(owner, func() View {
			return Render(c.state.Get())
		}, nil)

		firm.Effect(owner, func() firm.CleanUp {
			view := c.view.Peek()
			c.log.Debug("rendered",
				zap.Bool("loading", view.Loading),
				zap.Int("cards", len(view.Cards)),
			)
			return nil
		}, []firm.Reactive{c.view})

		firm.Timeout(owner, o.delay, func() {
			products := o.source()
			c.state.Update(func(s State) State {
				return s.Loaded(products)
			})
			c.log.Info("catalog loaded", zap.Int("products", len(products)))
		})

		return func() {
			c.log.Debug("controller disposed")
		}
	}, firm.WithClock(o.clock))

	return c
}

// State returns the current state.
func (c *Controller) State() State {
	var s State
	c.owner.Inspect(func() {
		s = c.state.Peek()
	})
	return s
}

// View returns the current rendering.
func (c *Controller) View() View {
	var v View
	c.owner.Inspect(func() {
		v = c.view.Peek()
	})
	return v
}

// Subscribe calls fn with the new view after every state transition. fn runs
// on the controller's loop and must not call back into the controller.
func (c *Controller) Subscribe(fn func(View)) (unsubscribe func()) {
	unsubscribe = func() {}
	c.owner.Run(func() {
		remove := c.view.Subscribe(fn)
		unsubscribe = func() {
			c.owner.Run(remove)
		}
	})
	return unsubscribe
}

// SetName edits the name field.
func (c *Controller) SetName(name string) {
	c.edit(func(f *Form) { f.Name = name })
}

// SetPrice edits the raw price field.
func (c *Controller) SetPrice(price string) {
	c.edit(func(f *Form) { f.Price = price })
}

// SetDescription edits the description field.
func (c *Controller) SetDescription(description string) {
	c.edit(func(f *Form) { f.Description = description })
}

// SetForm replaces all three fields at once.
func (c *Controller) SetForm(form Form) {
	c.edit(func(f *Form) { *f = form })
}

func (c *Controller) edit(fn func(*Form)) {
	c.owner.Run(func() {
		c.state.Update(func(s State) State {
			form := s.Form
			fn(&form)
			return s.Edited(form)
		})
	})
}

// Submit adds the product described by the form. A price that is not a
// number strictly greater than zero raises the alert and returns
// ErrInvalidPrice; the state, form included, is left untouched. On success
// the product is appended to a new collection and the form is cleared.
func (c *Controller) Submit() (Product, error) {
	return c.submit(nil)
}

// SubmitForm replaces the form fields with form and submits them in one
// step, so no other edit or submission can interleave. On failure the
// fields keep form's values.
func (c *Controller) SubmitForm(form Form) (Product, error) {
	return c.submit(&form)
}

func (c *Controller) submit(form *Form) (Product, error) {
	var (
		product Product
		err     error
	)

	ran := c.owner.Run(func() {
		current := c.state.Peek()
		if form != nil {
			current = current.Edited(*form)
		}

		product, err = current.Form.Product(current.Products)
		if err != nil {
			// a rejected submission still keeps what was typed
			c.state.Set(current)
			return
		}
		c.state.Set(current.Submitted(product))
	})
	if !ran {
		return Product{}, ErrClosed
	}

	if err != nil {
		if errors.Is(err, ErrInvalidPrice) {
			c.log.Info("submission rejected", zap.Error(err))
			c.alert(AlertInvalidPrice)
		} else {
			c.log.Error("submission failed", zap.Error(err))
		}
		return Product{}, err
	}

	c.log.Debug("product added",
		zap.String("id", product.ID),
		zap.String("name", product.Name),
		zap.String("price", product.Price.String()),
	)
	return product, nil
}

// Close tears the controller down and cancels a load still pending.
func (c *Controller) Close() {
	c.dispose()
}

// Closed reports whether Close was called.
func (c *Controller) Closed() bool {
	return c.owner.Disposed()
}

// Wait blocks until the initial load ran or was cancelled.
func (c *Controller) Wait() {
	c.wait()
}
