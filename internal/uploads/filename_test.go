package uploads

import (
	"testing"
	"time"
)

func TestSynthesizeFileNameFromOriginal(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	got, err := SynthesizeFileName(at, "", "My Report.pdf")
	if err != nil {
		t.Fatalf("SynthesizeFileName: %v", err)
	}
	want := "2025-03-14_09-26-53_My_Report.pdf"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSynthesizeFileNameTitleWins(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	got, err := SynthesizeFileName(at, "Quarterly Plan", "original.docx")
	if err != nil {
		t.Fatalf("SynthesizeFileName: %v", err)
	}
	// The title replaces the base name but inherits the extension.
	want := "2025-03-14_09-26-53_Quarterly_Plan.docx"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSynthesizeFileNameRejectsEmpty(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	if _, err := SynthesizeFileName(at, "", "   "); err == nil {
		t.Fatalf("expected error for blank name")
	}
	if _, err := SynthesizeFileName(at, "", "///"); err == nil {
		t.Fatalf("expected error for separator-only name")
	}
}

func TestSynthesizeFileNameSameSecondCollides(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	a, err := SynthesizeFileName(at, "", "photo.jpg")
	if err != nil {
		t.Fatalf("SynthesizeFileName: %v", err)
	}
	b, err := SynthesizeFileName(at.Add(500*time.Millisecond), "", "photo.jpg")
	if err != nil {
		t.Fatalf("SynthesizeFileName: %v", err)
	}
	if a != b {
		t.Fatalf("expected same-second names to collide: %q vs %q", a, b)
	}
}

func TestCategoryAllows(t *testing.T) {
	if !CategoryDocuments.Allows(".pdf") {
		t.Fatalf("documents should allow .pdf")
	}
	if !CategoryDocuments.Allows(".xlsm") {
		t.Fatalf("documents should allow .xlsm")
	}
	if CategoryDocuments.Allows(".jpg") {
		t.Fatalf("documents should reject .jpg")
	}
	if !CategoryPhotos.Allows(".heic") {
		t.Fatalf("photos should allow .heic")
	}
	if CategoryPhotos.Allows(".pdf") {
		t.Fatalf("photos should reject .pdf")
	}
	if CategoryPhotos.Allows("") {
		t.Fatalf("photos should reject missing extension")
	}
}
