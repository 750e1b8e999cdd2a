package e2etests

import (
	"testing"
	"testing/synctest"
	"time"

	"github.com/refactormachine/bootique"
	"github.com/refactormachine/bootique/bqtest"
	"github.com/shoenig/test"
	"github.com/shoenig/test/must"
)

func TestFireAndForget(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		factory := bqtest.Attach(t, entryPoint)

		b := factory.App("serve")

		start := time.Now()
		rt := b.MustStart(t)

		// The default check is unconditionally true: no waiting at all,
		// even though the timeout would have allowed 5s.
		test.Eq(t, time.Duration(0), time.Since(start))

		// Still running, so no outcome to report.
		_, ok := b.Outcome(rt)
		test.False(t, ok)

		test.Eq(t, []string{"serve"}, rt.(*demoApp).args)

		// Teardown via t.Cleanup stops the app; synctest's deadlock
		// detection would flag a leaked run goroutine if it didn't.
	})
}

func TestOutcomeAppearsOnceFinished(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		app := newDemoApp()
		app.runFor = 300 * time.Millisecond
		app.outcome.Message = "batch complete"

		factory := bqtest.Attach(t, func(...string) (bootique.Runtime, error) {
			return app, nil
		})

		b := factory.App()
		rt := b.MustStart(t)

		_, ok := b.Outcome(rt)
		test.False(t, ok)

		time.Sleep(350 * time.Millisecond)
		synctest.Wait()

		out, ok := b.Outcome(rt)
		must.True(t, ok)
		test.Eq(t, "batch complete", out.Message)
		test.True(t, out.Success())
	})
}

func TestStartupAndWait(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		app := newDemoApp()
		app.runFor = 120 * time.Millisecond
		app.outcome = bootique.Succeeded()

		factory := bqtest.Attach(t, func(...string) (bootique.Runtime, error) {
			return app, nil
		})

		b := factory.App()

		start := time.Now()
		rt, err := b.StartupAndWaitCheck().Start()
		must.NoError(t, err)

		// Start may only return once the outcome is present.
		out, ok := b.Outcome(rt)
		must.True(t, ok)
		test.True(t, out.Success())
		test.True(t, time.Since(start) >= app.runFor)
	})
}
