package departures

import (
	"fmt"
	"strings"
)

type StatusKind string

const (
	OnTime   StatusKind = "on-time"
	Delayed  StatusKind = "delayed"
	Early    StatusKind = "early"
	Canceled StatusKind = "canceled"
	Unknown  StatusKind = "unknown"
)

// TimeStatus classifies an event against its schedule. Minutes is always non-negative;
// the sign lives in Kind.
type TimeStatus struct {
	Kind    StatusKind
	Minutes int
}

func (ts TimeStatus) Label() string {
	switch ts.Kind {
	case OnTime:
		return "À l'heure"
	case Delayed:
		return fmt.Sprintf("+%d min", ts.Minutes)
	case Early:
		return fmt.Sprintf("-%d min", ts.Minutes)
	case Canceled:
		return "Supprimé"
	default:
		return "Information manquante"
	}
}

func (ts TimeStatus) CSSClass() string {
	switch ts.Kind {
	case OnTime, Delayed, Early, Canceled:
		return "status-" + string(ts.Kind)
	default:
		return ""
	}
}

// Reconciliation is what gets displayed for one scheduled event.
type Reconciliation struct {
	Scheduled   string
	Observed    string
	HasObserved bool
	Status      TimeStatus

	// minutes since midnight behind Scheduled and Observed; timed is false when
	// Scheduled is the placeholder
	scheduledMinutes int
	observedMinutes  int
	timed            bool
}

// ShownMinutes is the time of day of Shown, in minutes since midnight.
func (r Reconciliation) ShownMinutes() (int, bool) {
	if !r.timed {
		return 0, false
	}
	if r.HasObserved {
		return r.observedMinutes, true
	}
	return r.scheduledMinutes, true
}

// Changed reports whether the time cell should show a struck-through schedule next to
// the observed time.
func (r Reconciliation) Changed() bool {
	return r.HasObserved && (r.Status.Kind == Delayed || r.Status.Kind == Early)
}

// DelayPolicy decides which source wins when both timestamps are present and an explicit
// delay is also reported.
type DelayPolicy int

const (
	// TimestampsFirst compares the two timestamps and only uses the explicit delay to
	// synthesize a missing one.
	TimestampsFirst DelayPolicy = iota
	// ExplicitDelayFirst trusts the reported delay over the timestamps whenever it is given.
	ExplicitDelayFirst
)

func ParseDelayPolicy(s string) (DelayPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "timestamps":
		return TimestampsFirst, nil
	case "delay", "explicit-delay":
		return ExplicitDelayFirst, nil
	}
	return TimestampsFirst, fmt.Errorf("unknown delay policy %q", s)
}

func (p DelayPolicy) String() string {
	if p == ExplicitDelayFirst {
		return "explicit-delay"
	}
	return "timestamps"
}

// explicitDelayWins is the single point where the policy is applied.
func (p DelayPolicy) explicitDelayWins(scheduled, observed Stamp, explicitDelaySeconds *int) bool {
	if explicitDelaySeconds == nil || !scheduled.Valid() || !observed.Valid() {
		return false
	}
	return p == ExplicitDelayFirst
}

type Reconciler struct {
	Policy DelayPolicy
}

var defaultReconciler = Reconciler{Policy: TimestampsFirst}

// Reconcile applies the default TimestampsFirst policy.
func Reconcile(scheduled, observed Stamp, explicitDelaySeconds *int, canceled bool) Reconciliation {
	return defaultReconciler.Reconcile(scheduled, observed, explicitDelaySeconds, canceled)
}

func (rc Reconciler) Reconcile(scheduled, observed Stamp, explicitDelaySeconds *int, canceled bool) Reconciliation {
	if canceled {
		shown := scheduled
		if !shown.Valid() {
			shown = observed
		}
		return Reconciliation{
			Scheduled:        shown.Clock(),
			Status:           TimeStatus{Kind: Canceled},
			scheduledMinutes: shown.MinutesOfDay(),
			timed:            shown.Valid(),
		}
	}

	delayMinutes := 0
	if explicitDelaySeconds != nil && *explicitDelaySeconds > 0 {
		delayMinutes = *explicitDelaySeconds / 60
	}

	if rc.Policy.explicitDelayWins(scheduled, observed, explicitDelaySeconds) {
		if delayMinutes == 0 {
			return onTime(scheduled)
		}
		return delayedBy(scheduled.MinutesOfDay(), delayMinutes)
	}

	switch {
	case scheduled.Valid() && observed.Valid():
		if scheduled.Raw() == observed.Raw() {
			return onTime(scheduled)
		}
		diff := timeOfDayDifference(scheduled, observed)
		minutes := abs(diff) / 60
		if minutes == 0 {
			return onTime(scheduled)
		}
		kind := Delayed
		if diff < 0 {
			kind = Early
		}
		return Reconciliation{
			Scheduled:        scheduled.Clock(),
			Observed:         observed.Clock(),
			HasObserved:      true,
			Status:           TimeStatus{Kind: kind, Minutes: minutes},
			scheduledMinutes: scheduled.MinutesOfDay(),
			observedMinutes:  observed.MinutesOfDay(),
			timed:            true,
		}
	case scheduled.Valid() && delayMinutes > 0:
		return delayedBy(scheduled.MinutesOfDay(), delayMinutes)
	case observed.Valid() && delayMinutes > 0:
		return delayedBy(observed.MinutesOfDay()-delayMinutes, delayMinutes)
	case scheduled.Valid():
		return onTime(scheduled)
	case observed.Valid():
		return onTime(observed)
	}
	return Reconciliation{
		Scheduled: ClockPlaceholder,
		Status:    TimeStatus{Kind: Unknown},
	}
}

func onTime(s Stamp) Reconciliation {
	return Reconciliation{
		Scheduled:        s.Clock(),
		Status:           TimeStatus{Kind: OnTime},
		scheduledMinutes: s.MinutesOfDay(),
		timed:            true,
	}
}

func delayedBy(scheduledMinutes, delayMinutes int) Reconciliation {
	return Reconciliation{
		Scheduled:        formatClock(scheduledMinutes),
		Observed:         formatClock(scheduledMinutes + delayMinutes),
		HasObserved:      true,
		Status:           TimeStatus{Kind: Delayed, Minutes: delayMinutes},
		scheduledMinutes: wrapMinutes(scheduledMinutes),
		observedMinutes:  wrapMinutes(scheduledMinutes + delayMinutes),
		timed:            true,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
