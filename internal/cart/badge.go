package cart

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/minithai/minithai-backend/pkg/logger"
	"github.com/minithai/minithai-backend/pkg/metrics"
)

// Source exposes the cart-side view the badge reconciler reads from.
// *Store satisfies it.
type Source interface {
	Count() int
	Subscribe(fn func()) func()
}

// Display is one badge rendering target. Implementations are expected
// to be mounted late and replaced wholesale; the reconciler never
// caches a Display across runs.
type Display interface {
	Text() string
	SetText(text string)
	Visible() bool
	SetVisible(visible bool)
	Highlight()
	ClearHighlight()
}

// Surface locates the current badge Display, or nil while none is
// mounted. Looking up fresh on every pass is what makes the reconciler
// safe against displays that appear, disappear and get replaced.
type Surface interface {
	Badge() Display
}

// BadgeOptions tunes the reconciler triggers. Zero values fall back to
// the defaults the web badge shipped with.
type BadgeOptions struct {
	PollInterval  time.Duration
	MountDebounce time.Duration
	HighlightFor  time.Duration
}

func (o BadgeOptions) withDefaults() BadgeOptions {
	if o.PollInterval <= 0 {
		o.PollInterval = 2 * time.Second
	}
	if o.MountDebounce <= 0 {
		o.MountDebounce = 100 * time.Millisecond
	}
	if o.HighlightFor <= 0 {
		o.HighlightFor = 300 * time.Millisecond
	}
	return o
}

// BadgeReconciler keeps a late-mounting badge display consistent with
// the cart count. Four independent triggers feed one idempotent
// reconcile pass: a cart subscription, a debounced mount notification,
// a resume signal, and a steady poll. Extra passes are harmless, so
// overlapping triggers need no coordination beyond the serializing run
// loop.
type BadgeReconciler struct {
	source  Source
	surface Surface
	opts    BadgeOptions
	logg    *logger.Logger
	met     *metrics.BadgeMetrics

	kick    chan struct{}
	mounted chan struct{}
	resumed chan struct{}

	mu             sync.Mutex
	lastCount      int
	hasLast        bool
	highlightTimer *time.Timer

	unsubscribe func()
	cancel      context.CancelFunc
	done        chan struct{}
}

func NewBadgeReconciler(source Source, surface Surface, opts BadgeOptions, logg *logger.Logger, met *metrics.BadgeMetrics) *BadgeReconciler {
	return &BadgeReconciler{
		source:  source,
		surface: surface,
		opts:    opts.withDefaults(),
		logg:    logg,
		met:     met,
		kick:    make(chan struct{}, 1),
		mounted: make(chan struct{}, 1),
		resumed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Start runs one immediate pass, subscribes to the cart, and launches
// the trigger loop. It is not safe to call twice.
func (r *BadgeReconciler) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r.cancel = cancel

	r.Reconcile(runCtx)
	r.unsubscribe = r.source.Subscribe(func() {
		signal(r.kick)
	})

	go r.run(runCtx)
}

// Stop tears the trigger loop down and detaches from the cart.
func (r *BadgeReconciler) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
	if r.unsubscribe != nil {
		r.unsubscribe()
	}

	r.mu.Lock()
	if r.highlightTimer != nil {
		r.highlightTimer.Stop()
		r.highlightTimer = nil
	}
	r.mu.Unlock()
}

// NotifyMounted tells the reconciler a display just mounted. The pass
// is debounced so a burst of mount events collapses into one.
func (r *BadgeReconciler) NotifyMounted() {
	signal(r.mounted)
}

// NotifyResumed tells the reconciler the surface came back to the
// foreground and may have missed changes.
func (r *BadgeReconciler) NotifyResumed() {
	signal(r.resumed)
}

func (r *BadgeReconciler) run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.opts.PollInterval)
	defer ticker.Stop()

	var mountTimer *time.Timer
	var mountFired <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if mountTimer != nil {
				mountTimer.Stop()
			}
			return
		case <-r.kick:
			r.Reconcile(ctx)
		case <-r.resumed:
			r.Reconcile(ctx)
		case <-ticker.C:
			r.Reconcile(ctx)
		case <-r.mounted:
			if mountTimer == nil {
				mountTimer = time.NewTimer(r.opts.MountDebounce)
			} else {
				if !mountTimer.Stop() {
					select {
					case <-mountTimer.C:
					default:
					}
				}
				mountTimer.Reset(r.opts.MountDebounce)
			}
			mountFired = mountTimer.C
		case <-mountFired:
			mountFired = nil
			r.Reconcile(ctx)
		}
	}
}

// Reconcile performs one idempotent pass: read the count, find the
// current display, and bring text, visibility and highlight in line.
// With no display mounted it only records the count so a later mount
// does not flash a stale highlight.
func (r *BadgeReconciler) Reconcile(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			r.met.IncReconcile(metrics.BadgeOutcomeError)
			if r.logg != nil {
				r.logg.Error(ctx, "badge reconcile panicked", fmt.Errorf("panic: %v", rec))
			}
		}
	}()

	count := r.source.Count()

	r.mu.Lock()
	increased := r.hasLast && count > r.lastCount
	changed := !r.hasLast || count != r.lastCount
	r.lastCount = count
	r.hasLast = true
	r.mu.Unlock()

	display := r.surface.Badge()
	if display == nil {
		r.met.IncReconcile(metrics.BadgeOutcomeSkipped)
		return
	}

	text := strconv.Itoa(count)
	updated := false
	if display.Text() != text {
		display.SetText(text)
		updated = true
	}
	if visible := count > 0; display.Visible() != visible {
		display.SetVisible(visible)
		updated = true
	}

	if increased {
		r.flash(display)
	}

	if updated || changed {
		r.met.IncReconcile(metrics.BadgeOutcomeUpdated)
	} else {
		r.met.IncReconcile(metrics.BadgeOutcomeNoop)
	}
}

// flash highlights the display and schedules the clear, restarting the
// window when increases arrive back to back.
func (r *BadgeReconciler) flash(display Display) {
	display.Highlight()

	r.mu.Lock()
	if r.highlightTimer != nil {
		r.highlightTimer.Stop()
	}
	r.highlightTimer = time.AfterFunc(r.opts.HighlightFor, func() {
		if d := r.surface.Badge(); d != nil {
			d.ClearHighlight()
		}
	})
	r.mu.Unlock()
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
