package utils

import (
	"testing"
	"time"
)

func TestLeakCheckPassesWhenGoroutinesExit(t *testing.T) {
	lc := NewLeakCheck(t)

	done := make(chan struct{})
	go func() {
		time.Sleep(10 * time.Millisecond)
		close(done)
	}()
	<-done

	lc.Verify()
}

func TestLeakCheckSlackTolerance(t *testing.T) {
	lc := NewLeakCheck(t).WithSlack(1)

	release := make(chan struct{})
	defer close(release)
	go func() {
		<-release
	}()

	lc.Verify()
}
