package batch

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/marcos010894/innobyte-labels/internal/variables"
	"github.com/marcos010894/innobyte-labels/pkg/labelformat"
)

func testTemplate() labelformat.Template {
	return labelformat.Template{
		ID: "t",
		Config: labelformat.LabelConfig{
			Width: 50, Height: 30, Unit: labelformat.UnitMillimeter,
		},
		Elements: []labelformat.Element{
			{ID: "name", Type: labelformat.TypeText, X: 5, Y: 5, Width: 150, Height: 30, Content: "${nome}", FontSize: 12},
			{ID: "price", Type: labelformat.TypeText, X: 5, Y: 40, Width: 150, Height: 30, Content: "${preco}", FontSize: 16},
		},
	}
}

func testProducts(n int) []labelformat.Product {
	products := make([]labelformat.Product, n)
	for i := range products {
		products[i] = labelformat.Product{
			Name:  "Produto",
			Code:  "P-1",
			Price: 10.5,
		}
	}
	return products
}

var a4Config = labelformat.PagePrintConfig{
	PageSizeType:      labelformat.PageA4,
	MarginTop:         10,
	MarginBottom:      10,
	MarginLeft:        10,
	MarginRight:       10,
	SpacingHorizontal: 2,
	SpacingVertical:   2,
}

func TestGenerateDocument(t *testing.T) {
	d := NewDriver()

	doc, filename, err := d.GenerateDocument(context.Background(), testTemplate(), testProducts(3), a4Config, variables.Options{})
	if err != nil {
		t.Fatalf("GenerateDocument failed: %v", err)
	}

	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Error("Output is not a PDF")
	}
	if !bytes.Contains([]byte(filename), []byte("3-itens")) {
		t.Errorf("Filename should embed the item count, got %q", filename)
	}
}

func TestGenerateDocument_EmptyTemplateFailsFast(t *testing.T) {
	d := NewDriver()

	tpl := testTemplate()
	tpl.Elements = nil

	doc, _, err := d.GenerateDocument(context.Background(), tpl, testProducts(1), a4Config, variables.Options{})
	if err != ErrEmptyTemplate {
		t.Errorf("Expected ErrEmptyTemplate, got %v", err)
	}
	if doc != nil {
		t.Error("Empty template must produce no document")
	}
}

func TestGenerateDocument_Cancellation(t *testing.T) {
	d := NewDriver()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := d.GenerateDocument(ctx, testTemplate(), testProducts(5), a4Config, variables.Options{})
	if err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestExportPNG(t *testing.T) {
	d := NewDriver()

	img, filename, err := d.ExportPNG(testTemplate(), testProducts(1)[0], variables.Options{})
	if err != nil {
		t.Fatalf("ExportPNG failed: %v", err)
	}

	if !bytes.HasPrefix(img, []byte("\x89PNG")) {
		t.Error("Output is not a PNG")
	}
	if !bytes.HasSuffix([]byte(filename), []byte(".png")) {
		t.Errorf("Expected .png filename, got %q", filename)
	}
}

func TestPlacementPlan_Deterministic(t *testing.T) {
	a := PlacementPlan(30, 50, 30, a4Config)
	b := PlacementPlan(30, 50, 30, a4Config)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Placement %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPlacementPlan_SkipLabels(t *testing.T) {
	cfg := a4Config
	cfg.SkipLabels = 6 // grid is 3x8, so the first two rows stay empty

	plan := PlacementPlan(3, 50, 30, cfg)

	if plan[0].Page != 0 || plan[0].Column != 0 || plan[0].Row != 2 {
		t.Errorf("First product should land at (0, row 2), got %+v", plan[0])
	}
	if plan[1].Column != 1 || plan[1].Row != 2 {
		t.Errorf("Second product misplaced: %+v", plan[1])
	}
}

func TestPlacementPlan_PageOverflow(t *testing.T) {
	// 3x8 grid = 24 per page; products 24 and beyond go to page 1
	plan := PlacementPlan(26, 50, 30, a4Config)

	if plan[23].Page != 0 {
		t.Errorf("Product 23 should be on page 0, got %+v", plan[23])
	}
	if plan[24].Page != 1 || plan[24].Column != 0 || plan[24].Row != 0 {
		t.Errorf("Product 24 should open page 1 at (0,0), got %+v", plan[24])
	}
}

func TestQueue_JobLifecycle(t *testing.T) {
	q := NewQueue(NewDriver())
	defer q.Stop()

	id := q.Enqueue(testTemplate(), testProducts(2), a4Config, variables.Options{})

	deadline := time.After(15 * time.Second)
	for {
		job, ok := q.Get(id)
		if !ok {
			t.Fatal("Job disappeared from queue")
		}
		if job.Status == JobCompleted {
			if len(job.Document) == 0 {
				t.Error("Completed job has no document")
			}
			if job.Filename == "" {
				t.Error("Completed job has no filename")
			}
			return
		}
		if job.Status == JobFailed {
			t.Fatalf("Job failed: %s", job.Error)
		}

		select {
		case <-deadline:
			t.Fatalf("Job did not complete, status %s", job.Status)
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestQueue_FailedJobReportsError(t *testing.T) {
	q := NewQueue(NewDriver())
	defer q.Stop()

	tpl := testTemplate()
	tpl.Elements = nil // fails the empty-template guard inside the worker

	id := q.Enqueue(tpl, testProducts(1), a4Config, variables.Options{})

	deadline := time.After(15 * time.Second)
	for {
		job, ok := q.Get(id)
		if !ok {
			t.Fatal("Job disappeared from queue")
		}
		switch job.Status {
		case JobFailed:
			if job.Error != ErrEmptyTemplate.Error() {
				t.Errorf("Expected error %q, got %q", ErrEmptyTemplate, job.Error)
			}
			return
		case JobCancelled:
			t.Fatalf("Failed job misreported as cancelled (error=%q)", job.Error)
		case JobCompleted:
			t.Fatal("Empty template should not complete")
		}

		select {
		case <-deadline:
			t.Fatalf("Job did not finish, status %s", job.Status)
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestQueue_CancelQueuedJob(t *testing.T) {
	q := NewQueue(NewDriver())
	defer q.Stop()

	// Fill the worker with a long job, then cancel one behind it
	q.Enqueue(testTemplate(), testProducts(50), a4Config, variables.Options{})
	id := q.Enqueue(testTemplate(), testProducts(1), a4Config, variables.Options{})

	if !q.CancelJob(id) {
		t.Fatal("CancelJob returned false for a queued job")
	}

	job, _ := q.Get(id)
	if job.Status != JobCancelled {
		t.Errorf("Expected cancelled status, got %s", job.Status)
	}
}
