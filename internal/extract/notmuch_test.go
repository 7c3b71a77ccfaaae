package extract

import (
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Trimmed from real `notmuch show --format=json` output: a list of
// threads, each thread a list of [message, replies] pairs.
const notmuchShowSample = `
[
  [
    [
      {
        "id": "root@example.com",
        "headers": {
          "Subject": "Top of thread",
          "Date": "Mon, 5 Jan 2004 10:00:00 +0000",
          "From": "a@example.com"
        }
      },
      [
        [
          {
            "id": "<reply@example.com>",
            "headers": {
              "Subject": "Re: Top of thread",
              "Date": "Mon, 5 Jan 2004 11:00:00 +0000"
            }
          },
          []
        ]
      ]
    ]
  ],
  [
    [
      {
        "id": "lonely@example.com",
        "headers": {
          "Date": "Tue, 6 Jan 2004 09:00:00 +0000"
        }
      },
      []
    ]
  ]
]
`

func TestFlattenNotmuchJSON(t *testing.T) {
	var doc interface{}
	if err := json.Unmarshal([]byte(notmuchShowSample), &doc); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}

	msgs := flattenNotmuchJSON(doc)
	var ids []string
	for _, m := range msgs {
		ids = append(ids, m.id)
	}
	want := []string{"root@example.com", "<reply@example.com>", "lonely@example.com"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("flattened ids mismatch (-want +got):\n%s", diff)
	}

	if msgs[0].headers["Subject"] != "Top of thread" {
		t.Fatalf("Subject = %q", msgs[0].headers["Subject"])
	}
	if _, ok := msgs[2].headers["Subject"]; ok {
		t.Fatal("lonely message should have no Subject header")
	}
}

func TestNotmuch_NextWrapsBareIDs(t *testing.T) {
	n := &Notmuch{
		path: "test",
		msgs: []notmuchMessage{
			{id: "bare@example.com", headers: map[string]string{
				"Subject": "Hi",
				"Date":    "Mon, 5 Jan 2004 10:00:00 +0000",
			}},
			{id: "<wrapped@example.com>", headers: map[string]string{}},
		},
	}

	trip, err := n.Next()
	if err != nil {
		t.Fatalf("Next(): %v", err)
	}
	if *trip.MessageID != "<bare@example.com>" {
		t.Fatalf("MessageID = %q, want wrapped", *trip.MessageID)
	}
	if trip.Subject == nil || *trip.Subject != "Hi" {
		t.Fatalf("Subject = %v", trip.Subject)
	}

	trip, err = n.Next()
	if err != nil {
		t.Fatalf("Next(): %v", err)
	}
	if *trip.MessageID != "<wrapped@example.com>" {
		t.Fatalf("MessageID = %q, want unchanged", *trip.MessageID)
	}
	if trip.Subject != nil || trip.Date != nil {
		t.Fatalf("expected nil Subject/Date for headerless message, got %+v", trip)
	}

	if _, err := n.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestNotmuch_MissingDatabaseIsFatal(t *testing.T) {
	// Whether or not the notmuch binary exists on this machine, a missing
	// database path must fail at construction.
	if _, err := NewNotmuch(filepath.Join(t.TempDir(), "no-such-index"), discardLogger()); err == nil {
		t.Fatal("expected error for missing notmuch database")
	}
}
