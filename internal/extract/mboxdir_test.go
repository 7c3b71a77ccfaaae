package extract

import (
	"compress/gzip"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mboxMessage(id, subject, date string) string {
	var sb strings.Builder
	sb.WriteString("From sender@example.com Mon Jan  5 10:00:00 2004\n")
	if id != "" {
		sb.WriteString("Message-ID: " + id + "\n")
	}
	if subject != "" {
		sb.WriteString("Subject: " + subject + "\n")
	}
	if date != "" {
		sb.WriteString("Date: " + date + "\n")
	}
	sb.WriteString("\nBody\n\n")
	return sb.String()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeGzFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(content)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
}

func TestMboxDir_WalksSuffixesAndGzip(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "b.mbox"),
		mboxMessage("<b1@x>", "B one", "Mon, 5 Jan 2004 10:00:00 +0000")+
			mboxMessage("<b2@x>", "B two", "Tue, 6 Jan 2004 10:00:00 +0000"))
	writeFile(t, filepath.Join(root, "a.mbx"),
		mboxMessage("<a1@x>", "A one", "Sun, 4 Jan 2004 10:00:00 +0000"))
	writeFile(t, filepath.Join(root, "notes.txt"), "not a mailbox\n")
	writeGzFile(t, filepath.Join(root, "sub", "c.mbx.gz"),
		mboxMessage("<c1@x>", "C one", "Wed, 7 Jan 2004 10:00:00 +0000"))

	src, err := NewMboxDir(root, discardLogger())
	if err != nil {
		t.Fatalf("NewMboxDir: %v", err)
	}
	defer src.Close()

	got := drainIDs(t, src)
	// Lexical order: a.mbx, b.mbox, then sub/c.mbx.gz; notes.txt ignored.
	want := []string{"<a1@x>", "<b1@x>", "<b2@x>", "<c1@x>"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("message order mismatch (-want +got):\n%s", diff)
	}
}

func TestMboxDir_MissingHeaderYieldsNilField(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "m.mbox"),
		mboxMessage("<only-id@x>", "", ""))

	src, err := NewMboxDir(root, discardLogger())
	if err != nil {
		t.Fatalf("NewMboxDir: %v", err)
	}
	defer src.Close()

	trip, err := src.Next()
	if err != nil {
		t.Fatalf("Next(): %v", err)
	}
	if trip.MessageID == nil || *trip.MessageID != "<only-id@x>" {
		t.Fatalf("MessageID = %v", trip.MessageID)
	}
	if trip.Subject != nil || trip.Date != nil {
		t.Fatalf("expected nil Subject/Date, got %+v", trip)
	}
}

func TestMboxDir_CorruptMessageIsSkipNotFatal(t *testing.T) {
	root := t.TempDir()
	corrupt := "From sender@example.com Mon Jan  5 10:00:00 2004\n" +
		"this line has no colon so the header is malformed\n\nBody\n\n"
	writeFile(t, filepath.Join(root, "m.mbox"),
		corrupt+mboxMessage("<ok@x>", "fine", "Mon, 5 Jan 2004 10:00:00 +0000"))

	src, err := NewMboxDir(root, discardLogger())
	if err != nil {
		t.Fatalf("NewMboxDir: %v", err)
	}
	defer src.Close()

	_, err = src.Next()
	if !IsSkip(err) {
		t.Fatalf("expected skip error for corrupt message, got %v", err)
	}

	trip, err := src.Next()
	if err != nil {
		t.Fatalf("Next() after skip: %v", err)
	}
	if *trip.MessageID != "<ok@x>" {
		t.Fatalf("MessageID = %q", *trip.MessageID)
	}
}

func TestMboxDir_UnreadableRootIsFatal(t *testing.T) {
	if _, err := NewMboxDir(filepath.Join(t.TempDir(), "nope"), discardLogger()); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestMboxDir_EmptyTree(t *testing.T) {
	src, err := NewMboxDir(t.TempDir(), discardLogger())
	if err != nil {
		t.Fatalf("NewMboxDir: %v", err)
	}
	if _, err := src.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}
