package navideck

import "fmt"

// recorder is a Controllable that logs every event it receives.
type recorder struct {
	name   string
	events *[]string
	ctrl   *Controller
	// onUpdate, when set, runs inside Update.
	onUpdate func()
	// onAskGoto, when set, runs inside AskGotoPage.
	onAskGoto func()
}

func newRecorder(name string, events *[]string) *recorder {
	return &recorder{name: name, events: events}
}

func (r *recorder) log(event string) {
	entry := event
	if r.ctrl != nil {
		entry = fmt.Sprintf("%s@%d/%d", event, r.ctrl.CurrentRealIndex(), r.ctrl.CurrentUserIndex())
	}
	*r.events = append(*r.events, r.name+":"+entry)
}

func (r *recorder) Update() {
	r.log("update")
	if r.onUpdate != nil {
		r.onUpdate()
	}
}

func (r *recorder) Reset()       { r.log("reset") }
func (r *recorder) FadeToBlack() { r.log("black") }
func (r *recorder) EditNote()    { r.log("note") }

func (r *recorder) AskGotoPage() {
	r.log("goto")
	if r.onAskGoto != nil {
		r.onAskGoto()
	}
}

type staticProvider int

func (p staticProvider) SlideCount() int { return int(p) }

// scenarioA is 10 slides with 1-based slides 3, 3 and 7 skipped.
func scenarioA(opts Options) *Controller {
	return New(10, []int{2, 2, 6}, opts)
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
