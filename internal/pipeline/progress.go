package pipeline

// Phase labels, in execution order.
const (
	phaseClassify  = "classify"
	phaseExtract   = "extract"
	phaseQuality   = "quality"
	phaseAggregate = "aggregate"
)

var phaseOrder = []string{phaseClassify, phaseExtract, phaseQuality, phaseAggregate}

// ProgressEvent reports pipeline progress. Percent never decreases
// within one run.
type ProgressEvent struct {
	ManifestID string
	Phase      string
	Step       int
	TotalSteps int
	Percent    int
}

// Notifier receives progress events. Implementations must not block;
// the pipeline calls synchronously between phases.
type Notifier interface {
	Progress(ProgressEvent)
}

// progress tracks monotonic phase progress for one run. A nil notifier
// disables emission without changing pipeline behavior.
type progress struct {
	notifier Notifier
	id       string
	step     int
}

func newProgress(notifier Notifier, manifestID string) *progress {
	return &progress{notifier: notifier, id: manifestID}
}

func (p *progress) phase(name string) {
	p.step++
	p.emit(name)
}

func (p *progress) done() {
	p.step = len(phaseOrder) + 1
	p.emit("done")
}

func (p *progress) emit(phase string) {
	if p.notifier == nil {
		return
	}
	total := len(phaseOrder) + 1
	pct := (p.step - 1) * 100 / len(phaseOrder)
	if p.step > len(phaseOrder) {
		pct = 100
	}
	p.notifier.Progress(ProgressEvent{
		ManifestID: p.id,
		Phase:      phase,
		Step:       p.step,
		TotalSteps: total,
		Percent:    pct,
	})
}
