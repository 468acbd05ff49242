package util

import (
	"sync"
	"testing"
)

func TestProgress(t *testing.T) {
	p := NewProgress(200)

	if got := p.Add(50); got != 50 {
		t.Fatalf("expected 50 done, got %d", got)
	}
	if p.Percent() != 25 {
		t.Fatalf("expected 25%%, got %d%%", p.Percent())
	}

	p.Add(150)
	if p.Percent() != 100 {
		t.Fatalf("expected 100%%, got %d%%", p.Percent())
	}
	if got := p.String(); got != "200/200 (100%)" {
		t.Fatalf("expected formatted progress, got %q", got)
	}
}

func TestProgress_OvershootClamps(t *testing.T) {
	p := NewProgress(10)
	p.Add(25)
	if p.Percent() != 100 {
		t.Fatalf("expected percent capped at 100, got %d", p.Percent())
	}
	if p.Done() != 25 {
		t.Fatalf("expected raw done count preserved, got %d", p.Done())
	}
}

func TestProgress_ZeroTotal(t *testing.T) {
	p := NewProgress(0)
	p.Add(5)
	if p.Percent() != 0 {
		t.Fatalf("expected 0%% for zero total, got %d", p.Percent())
	}
}

func TestProgress_ConcurrentAdd(t *testing.T) {
	p := NewProgress(1000)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				p.Add(10)
			}
		}()
	}
	wg.Wait()

	if p.Done() != 1000 {
		t.Fatalf("expected 1000 done, got %d", p.Done())
	}
	if p.Percent() != 100 {
		t.Fatalf("expected 100%%, got %d", p.Percent())
	}
}
