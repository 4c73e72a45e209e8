package findings

import (
	"fmt"
	"io"
	"strconv"

	"github.com/minio/highwayhash"
)

var fingerprintKey = []byte("jdoop-taint-flow-fingerprint-k32")

// Fingerprint hashes parts into a stable hex identifier. Parts are length
// prefixed so ("ab", "c") and ("a", "bc") never collide.
func Fingerprint(parts ...string) (string, error) {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return "", err
	}
	for _, p := range parts {
		if _, err := hash.Write([]byte(strconv.Itoa(len(p)) + ":" + p)); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%016x", hash.Sum64()), nil
}

// Leak is a finding with its sink context dropped. Several findings that only
// differ in the context of the sink argument describe the same leak.
type Leak struct {
	SourceLabel    string `json:"source_label"`
	SinkLabel      string `json:"sink_label"`
	SinkInvocation string `json:"sink_invo"`
	SinkParam      string `json:"sink_param"`
	Source         string `json:"source"`
}

// LeakOf returns the leak a finding reports.
func LeakOf(f Finding) Leak {
	return Leak{
		SourceLabel:    f.SourceLabel,
		SinkLabel:      f.SinkLabel,
		SinkInvocation: f.SinkInvocation,
		SinkParam:      f.SinkParam,
		Source:         f.Source,
	}
}

// Key identifies the leak independently of the finding it came from.
func (l Leak) Key() (string, error) {
	return Fingerprint(l.SourceLabel, l.SinkLabel, l.SinkInvocation, l.SinkParam, l.Source)
}

// Summarize deduplicates findings into leaks, keeping first-seen order.
func Summarize(all []Finding) []Leak {
	seen := make(map[Leak]bool, len(all))
	leaks := make([]Leak, 0, len(all))
	for _, f := range all {
		l := LeakOf(f)
		if seen[l] {
			continue
		}
		seen[l] = true
		leaks = append(leaks, l)
	}
	return leaks
}

// WriteSummary prints one block per leak.
func WriteSummary(w io.Writer, leaks []Leak) error {
	for _, l := range leaks {
		_, err := fmt.Fprintf(w, "[%s=>%s]:\n\tSource: %s\n\tInvocation to sink method: %s\n\tSink argument: %s\n\n",
			l.SourceLabel, l.SinkLabel, l.Source, l.SinkInvocation, l.SinkParam)
		if err != nil {
			return err
		}
	}
	return nil
}
