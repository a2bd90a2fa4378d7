package linear

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

var (
	ErrNegativeOrder   = errors.New("fourier order must be non-negative")
	ErrNegativeZscore  = errors.New("interval z-score must be non-negative")
	ErrUnknownHoliday  = errors.New("unknown holiday")
	ErrDuplicateColumn = errors.New("regressor name collides with a reserved column")
)

// DefaultIntervalZscore gives an 80% interval assuming normally distributed residuals.
const DefaultIntervalZscore = 1.2816

// Options configures the regression features and the uncertainty interval of a Model.
type Options struct {
	Growth       bool // linear trend over the training span
	DailyOrders  int
	WeeklyOrders int
	YearlyOrders int

	// Holidays are modelled as indicator regressors on their observed day.
	Holidays []*cal.Holiday

	// Regressors are extra float columns read from both the training and the horizon tables.
	Regressors []string

	// IntervalZscore scales the training residual standard deviation into yhat_lower and yhat_upper.
	IntervalZscore float64

	// ComponentsWriter receives the html component plot. Nil disables component plotting.
	ComponentsWriter io.Writer
}

func NewDefaultOptions() *Options {
	return &Options{
		Growth:         true,
		DailyOrders:    4,
		WeeklyOrders:   3,
		YearlyOrders:   10,
		IntervalZscore: DefaultIntervalZscore,
	}
}

// Validate checks the options for values that cannot produce a model.
func (o *Options) Validate() error {
	for name, order := range map[string]int{
		"daily":  o.DailyOrders,
		"weekly": o.WeeklyOrders,
		"yearly": o.YearlyOrders,
	} {
		if order < 0 {
			return fmt.Errorf("%s order %d, %w", name, order, ErrNegativeOrder)
		}
	}
	if o.IntervalZscore < 0 {
		return fmt.Errorf("%.3f, %w", o.IntervalZscore, ErrNegativeZscore)
	}
	for _, r := range o.Regressors {
		if _, reserved := reservedColumns[r]; reserved {
			return fmt.Errorf("%s, %w", r, ErrDuplicateColumn)
		}
	}
	return nil
}

var usHolidays = map[string]*cal.Holiday{
	"new_years_day":    us.NewYear,
	"mlk_day":          us.MlkDay,
	"presidents_day":   us.PresidentsDay,
	"memorial_day":     us.MemorialDay,
	"juneteenth":       us.Juneteenth,
	"independence_day": us.IndependenceDay,
	"labor_day":        us.LaborDay,
	"columbus_day":     us.ColumbusDay,
	"veterans_day":     us.VeteransDay,
	"thanksgiving":     us.ThanksgivingDay,
	"christmas":        us.ChristmasDay,
}

// USHolidays resolves holiday names such as "christmas" or "thanksgiving" into calendar
// definitions.
func USHolidays(names ...string) ([]*cal.Holiday, error) {
	holidays := make([]*cal.Holiday, 0, len(names))
	for _, name := range names {
		hol, exists := usHolidays[strings.ToLower(strings.TrimSpace(name))]
		if !exists {
			return nil, fmt.Errorf("%s, %w", name, ErrUnknownHoliday)
		}
		holidays = append(holidays, hol)
	}
	return holidays, nil
}
