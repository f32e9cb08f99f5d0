package xref_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/wudi/pdffeatures/xref"
)

func buildPDF(header string, eol string) ([]byte, int64) {
	buf := &bytes.Buffer{}
	buf.WriteString("%PDF-1.7\n")
	offsets := make(map[int]int)
	offsets[1] = buf.Len()
	buf.WriteString("1 0 obj\n<< /Type /Catalog >>\nendobj\n")
	offsets[2] = buf.Len()
	buf.WriteString("2 0 obj\n<< /Type /Pages /Count 0 >>\nendobj\n")

	xrefOffset := buf.Len()
	buf.WriteString("xref\n" + header + "\n")
	buf.WriteString("0000000000 65535 f" + eol)
	for i := 1; i <= 2; i++ {
		fmt.Fprintf(buf, "%010d 00000 n%s", offsets[i], eol)
	}
	buf.WriteString("trailer\n<< /Size 3 /Root 1 0 R >>\n")
	fmt.Fprintf(buf, "startxref\n%d\n%%%%EOF\n", xrefOffset)
	return buf.Bytes(), int64(xrefOffset)
}

func TestStartXRef(t *testing.T) {
	pdf, want := buildPDF("0 3", " \n")
	got, err := xref.StartXRef(pdf)
	if err != nil {
		t.Fatalf("startxref: %v", err)
	}
	if got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
	if _, err := xref.StartXRef([]byte("%PDF-1.7\n")); !errors.Is(err, xref.ErrNoStartXRef) {
		t.Fatalf("expected ErrNoStartXRef, got %v", err)
	}
}

func TestInspectCompliantMarkers(t *testing.T) {
	for _, eol := range []string{" \n", " \r", "\r\n"} {
		pdf, off := buildPDF("0 3", eol)
		sec, err := xref.Inspect(pdf, off)
		if err != nil {
			t.Fatalf("inspect %q: %v", eol, err)
		}
		if !sec.Info.SubsectionHeaderSpaceSeparated {
			t.Errorf("%q: header flagged", eol)
		}
		if !sec.Info.EOLMarkersComply {
			t.Errorf("%q: markers flagged", eol)
		}
		if len(sec.Subsections) != 1 || sec.Subsections[0] != (xref.Subsection{First: 0, Count: 3}) {
			t.Errorf("%q: unexpected subsections %+v", eol, sec.Subsections)
		}
	}
}

func TestInspectNonCompliantMarkers(t *testing.T) {
	for _, eol := range []string{"\n", " \r\n", "  \n"} {
		pdf, off := buildPDF("0 3", eol)
		sec, err := xref.Inspect(pdf, off)
		if err != nil {
			t.Fatalf("inspect %q: %v", eol, err)
		}
		if sec.Info.EOLMarkersComply {
			t.Errorf("%q: expected markers to be flagged", eol)
		}
	}
}

func TestInspectHeaderSeparator(t *testing.T) {
	pdf, off := buildPDF("0  3", " \n")
	sec, err := xref.Inspect(pdf, off)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if sec.Info.SubsectionHeaderSpaceSeparated {
		t.Fatalf("expected double space header to be flagged")
	}
	if !sec.Info.EOLMarkersComply {
		t.Fatalf("entries should still comply")
	}
}

func TestInspectNotATable(t *testing.T) {
	pdf, _ := buildPDF("0 3", " \n")
	if _, err := xref.Inspect(pdf, 0); !errors.Is(err, xref.ErrNotTable) {
		t.Fatalf("expected ErrNotTable, got %v", err)
	}
	if _, err := xref.Inspect(pdf, int64(len(pdf)+10)); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestInspectTruncated(t *testing.T) {
	data := []byte("xref\n0 3\n0000000000 65535 f \n")
	if _, err := xref.Inspect(data, 0); err == nil {
		t.Fatalf("expected error for truncated section")
	}
}
