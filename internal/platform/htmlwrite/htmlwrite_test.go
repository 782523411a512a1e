package htmlwrite

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func TestWriterEscapesTextAndAttributes(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	out := New(&b)
	out.Raw(`<a title="`)
	out.Attr(`"quoted" & <b>`)
	out.Raw(`">`)
	out.Text(`<script>`)
	out.Raw(`</a>`)
	if err := out.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	want := `<a title="&#34;quoted&#34; &amp; &lt;b&gt;">&lt;script&gt;</a>`
	if got := b.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriterSanitizesURLs(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	out := New(&b)
	out.URL("javascript:alert(1)")
	if got := b.String(); strings.Contains(got, "javascript") {
		t.Fatalf("output = %q, want unsafe url replaced", got)
	}
}

type failingWriter struct{ writes int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.writes++
	return 0, errors.New("closed")
}

func TestWriterStopsAfterFirstError(t *testing.T) {
	t.Parallel()

	fw := &failingWriter{}
	out := New(fw)
	out.Raw("a")
	out.Text("b")
	out.Component(context.Background(), templ.ComponentFunc(func(context.Context, io.Writer) error {
		t.Fatal("component rendered after failure")
		return nil
	}))
	if out.Err() == nil {
		t.Fatal("Err() = nil, want write error")
	}
	if fw.writes != 1 {
		t.Fatalf("writes = %d, want 1", fw.writes)
	}
}

func TestWriterRendersComponents(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	out := New(&b)
	out.Raw("<main>")
	out.Component(context.Background(), templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "child")
		return err
	}))
	out.Component(context.Background(), nil)
	out.Raw("</main>")
	if got := b.String(); got != "<main>child</main>" {
		t.Fatalf("output = %q, want %q", got, "<main>child</main>")
	}
}
