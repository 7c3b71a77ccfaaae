package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Notmuch extracts triples from a notmuch mail index by shelling out to
// the notmuch binary, the same way the index's own frontends do. One query
// selects every message dated up to "now", with "now" fixed when the
// extractor is constructed; results are yielded in notmuch's native order.
//
// Message ids from notmuch come without angle brackets, so they are
// wrapped here at extraction time. The normalizer wraps too; doing it in
// both places is deliberate and harmless.
type Notmuch struct {
	path string
	msgs []notmuchMessage
	idx  int
}

type notmuchMessage struct {
	id      string
	headers map[string]string
}

// NewNotmuch queries the notmuch database at dbPath. A missing notmuch
// binary or unreachable database is a configuration error and fails here;
// nothing about the index is probed lazily.
func NewNotmuch(dbPath string, log *slog.Logger) (*Notmuch, error) {
	bin, err := exec.LookPath("notmuch")
	if err != nil {
		return nil, fmt.Errorf("notmuch source configured but notmuch binary not found: %w", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("notmuch database: %w", err)
	}

	query := "date:.." + time.Now().Format("2006-01-02")
	cmd := exec.Command(bin, "show", "--format=json", "--body=false", "--entire-thread=false", query)
	cmd.Env = append(os.Environ(), "NOTMUCH_DATABASE="+dbPath)
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return nil, fmt.Errorf("notmuch show: %w: %s", err, strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("notmuch show: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(out, &doc); err != nil {
		return nil, fmt.Errorf("notmuch show: decode output: %w", err)
	}
	msgs := flattenNotmuchJSON(doc)
	log.Debug("scanning notmuch", "path", dbPath, "query", query, "messages", len(msgs))

	return &Notmuch{path: dbPath, msgs: msgs}, nil
}

// flattenNotmuchJSON walks notmuch show's nested thread structure (arrays
// of [message, replies] pairs, arbitrarily deep) and collects message
// objects in document order. A message object is any map carrying a string
// "id"; threads and replies are arrays.
func flattenNotmuchJSON(doc interface{}) []notmuchMessage {
	var msgs []notmuchMessage
	var walk func(v interface{})
	walk = func(v interface{}) {
		switch node := v.(type) {
		case []interface{}:
			for _, child := range node {
				walk(child)
			}
		case map[string]interface{}:
			id, ok := node["id"].(string)
			if !ok || id == "" {
				return
			}
			m := notmuchMessage{id: id, headers: map[string]string{}}
			if hdrs, ok := node["headers"].(map[string]interface{}); ok {
				for k, hv := range hdrs {
					if s, ok := hv.(string); ok {
						m.headers[k] = s
					}
				}
			}
			msgs = append(msgs, m)
		}
	}
	walk(doc)
	return msgs
}

func (n *Notmuch) Name() string { return "notmuch:" + n.path }

func (n *Notmuch) Next() (*Triple, error) {
	if n.idx >= len(n.msgs) {
		return nil, io.EOF
	}
	m := n.msgs[n.idx]
	n.idx++

	id := m.id
	if !strings.HasPrefix(id, "<") {
		id = "<" + id + ">"
	}
	t := &Triple{MessageID: str(id)}
	if v, ok := m.headers["Subject"]; ok {
		t.Subject = str(v)
	}
	if v, ok := m.headers["Date"]; ok {
		t.Date = str(v)
	}
	return t, nil
}

func (n *Notmuch) Close() error {
	n.msgs = nil
	return nil
}
