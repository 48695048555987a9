package doctext

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenderdesk/notice-validator/internal/common"
)

type stubRunner struct {
	stdout []byte
	stderr []byte
	err    error

	gotName string
	gotArgs []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.gotName = name
	s.gotArgs = args
	return s.stdout, s.stderr, s.err
}

func TestPlainTextPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notice.txt")
	require.NoError(t, os.WriteFile(path, []byte("page one\fpage two"), 0o644))

	pages, err := PlainText{}.Pages(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"page one", "page two"}, pages)
}

func TestPlainTextPagesSinglePage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notice.txt")
	require.NoError(t, os.WriteFile(path, []byte("just one page"), 0o644))

	pages, err := PlainText{}.Pages(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"just one page"}, pages)
}

func TestPlainTextPagesMissingFile(t *testing.T) {
	_, err := PlainText{}.Pages(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestPDFPages(t *testing.T) {
	runner := &stubRunner{stdout: []byte("first\fsecond\fthird")}
	p := &PDF{Bin: "pdftotext", runner: runner}

	pages, err := p.Pages(context.Background(), "/tmp/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, pages)

	assert.Equal(t, "pdftotext", runner.gotName)
	assert.Equal(t, []string{"-layout", "-enc", "UTF-8", "-eol", "unix", "/tmp/doc.pdf", "-"}, runner.gotArgs)
}

func TestPDFPagesCommandFailure(t *testing.T) {
	runner := &stubRunner{stderr: []byte("Syntax Error: broken xref"), err: errors.New("exit status 1")}
	p := &PDF{Bin: "pdftotext", runner: runner}

	_, err := p.Pages(context.Background(), "/tmp/doc.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken xref")
}

func TestDispatcherPages(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notice.TXT")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o644))

	d := NewDispatcher(common.DocTextConfig{PdftotextBin: "pdftotext"})

	pages, err := d.Pages(context.Background(), txt)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, pages)

	_, err = d.Pages(context.Background(), filepath.Join(dir, "notice.docx"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported document format")
}
