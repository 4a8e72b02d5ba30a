package ratelimit

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestWindow_AdmitUnderLimit(t *testing.T) {
	w := NewWindow(3, time.Minute)

	for i := 0; i < 3; i++ {
		if err := w.Admit("caller"); err != nil {
			t.Fatalf("request %d rejected: %v", i, err)
		}
	}

	err := w.Admit("caller")
	if err == nil {
		t.Fatal("expected rejection over limit")
	}
	var tooMany ErrTooManyRequests
	if !errors.As(err, &tooMany) {
		t.Errorf("expected ErrTooManyRequests, got %v", err)
	}
}

func TestWindow_RejectionDoesNotMutate(t *testing.T) {
	w := NewWindow(1, time.Minute)
	_ = w.Admit("caller")

	// Repeated rejections must not extend the window
	for i := 0; i < 5; i++ {
		if err := w.Admit("caller"); err == nil {
			t.Fatal("expected rejection")
		}
	}
	if w.Remaining("caller") != 0 {
		t.Errorf("expected 0 remaining, got %d", w.Remaining("caller"))
	}
}

func TestWindow_SlidesForward(t *testing.T) {
	w := NewWindow(2, time.Minute)
	current := time.Now()
	w.now = func() time.Time { return current }

	_ = w.Admit("caller")
	_ = w.Admit("caller")
	if err := w.Admit("caller"); err == nil {
		t.Fatal("expected rejection at limit")
	}

	// Advance past the window; old timestamps should be pruned
	current = current.Add(61 * time.Second)
	if err := w.Admit("caller"); err != nil {
		t.Fatalf("expected admission after window slid: %v", err)
	}
}

func TestWindow_IndependentCallers(t *testing.T) {
	w := NewWindow(1, time.Minute)
	if err := w.Admit("a"); err != nil {
		t.Fatalf("a rejected: %v", err)
	}
	if err := w.Admit("b"); err != nil {
		t.Fatalf("b rejected: %v", err)
	}
}

func TestWindow_ConcurrentAdmission(t *testing.T) {
	w := NewWindow(50, time.Minute)

	var wg sync.WaitGroup
	admitted := make(chan struct{}, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := w.Admit("caller"); err == nil {
				admitted <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(admitted)

	count := 0
	for range admitted {
		count++
	}
	if count != 50 {
		t.Errorf("expected exactly 50 admissions under concurrency, got %d", count)
	}
}

func TestDomainLimiter_PerDomain(t *testing.T) {
	l := NewDomainLimiter(1, 1)

	if !l.Allow("https://example.com/a") {
		t.Error("first request should be allowed")
	}
	if l.Allow("https://example.com/b") {
		t.Error("second request to same domain should be throttled")
	}
	if !l.Allow("https://other.com/") {
		t.Error("different domain should have its own bucket")
	}
}
