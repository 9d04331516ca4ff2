package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/webclient/engine"
	"github.com/kbukum/webclient/params"
	"github.com/kbukum/webclient/request"
)

// fakeEngine answers each call through a handler keyed by call index.
type fakeEngine struct {
	mu      sync.Mutex
	calls   []engine.Request
	handler func(call int, req engine.Request) (*engine.Response, error)
}

func (f *fakeEngine) Execute(_ context.Context, req engine.Request) (*engine.Response, error) {
	f.mu.Lock()
	call := len(f.calls)
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	return f.handler(call, req)
}

func (f *fakeEngine) ExecuteStream(context.Context, engine.Request) (*engine.StreamResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEngine) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func bodyMapper(resp *engine.Response) (string, error) {
	return string(resp.Body), nil
}

func pagedMethod(initial, step int64, limit request.Limit) request.Method {
	return request.Method{
		Name:        "list",
		Kind:        request.KindGet,
		RelativeURL: "/items",
		Countable: &request.CountableSpec{
			ParamName: "page",
			Initial:   initial,
			Step:      step,
			Limit:     limit,
		},
	}
}

func TestProcess_ExactIterationCount(t *testing.T) {
	// limit(count) = count >= 3, initial 0, step 1: exactly 3 results
	// (counts 0,1,2) while the count==3 round trip happens and its
	// response is discarded.
	const n = 3
	eng := &fakeEngine{handler: func(call int, req engine.Request) (*engine.Response, error) {
		return &engine.Response{StatusCode: 200, Body: []byte(fmt.Sprintf("body-%d", call))}, nil
	}}

	p := New(eng, "https://api.example.com", pagedMethod(0, 1, params.LimitAtCount(n)), bodyMapper)
	consumer, err := p.Process(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if consumer.Len() != n {
		t.Fatalf("expected exactly %d results, got %d", n, consumer.Len())
	}
	if got := eng.callCount(); got != n+1 {
		t.Errorf("the stop-triggering round trip must still happen: expected %d calls, got %d", n+1, got)
	}
	// The triggering response (body-3) is discarded, never mapped.
	for _, item := range consumer.Items() {
		if item == "body-3" {
			t.Error("the response that triggered the limit must not be collected")
		}
	}
	if p.State() != StoppedByLimit {
		t.Errorf("expected StoppedByLimit, got %s", p.State())
	}
}

func TestProcess_CountAdvancesQueryParam(t *testing.T) {
	eng := &fakeEngine{handler: func(call int, req engine.Request) (*engine.Response, error) {
		return &engine.Response{StatusCode: 200, Body: []byte("x")}, nil
	}}

	p := New(eng, "https://api.example.com", pagedMethod(1, 1, params.LimitAtCount(4)), bodyMapper)
	if _, err := p.Process(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, req := range eng.calls {
		want := fmt.Sprintf("page=%d", i+1)
		if !strings.Contains(req.URL, want) {
			t.Errorf("call %d: expected %s in %s", i, want, req.URL)
		}
	}
}

func TestProcess_NoCountable_SinglePass(t *testing.T) {
	eng := &fakeEngine{handler: func(call int, req engine.Request) (*engine.Response, error) {
		return &engine.Response{StatusCode: 200, Body: []byte("only")}, nil
	}}

	m := request.Method{Name: "one", Kind: request.KindGet, RelativeURL: "/thing"}
	p := New(eng, "https://api.example.com", m, bodyMapper)
	consumer, err := p.Process(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if consumer.Len() != 1 {
		t.Fatalf("expected exactly one mapped result, got %d", consumer.Len())
	}
	if eng.callCount() != 1 {
		t.Errorf("expected a single round trip, got %d", eng.callCount())
	}
	if v, _ := consumer.First(); v != "only" {
		t.Errorf("expected mapped result, got %q", v)
	}
	if p.State() != StoppedByLimit {
		t.Errorf("expected StoppedByLimit, got %s", p.State())
	}
}

func TestProcess_Ordering(t *testing.T) {
	handler := func(call int, req engine.Request) (*engine.Response, error) {
		return &engine.Response{StatusCode: 200, Body: []byte(fmt.Sprintf("r%d", call))}, nil
	}
	want := []string{"r0", "r1", "r2", "r3", "r4"}

	t.Run("sync", func(t *testing.T) {
		eng := &fakeEngine{handler: handler}
		p := New(eng, "https://api.example.com", pagedMethod(0, 1, params.LimitAtCount(5)), bodyMapper)
		consumer, err := p.Process(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertItems(t, consumer.Items(), want)
	})

	t.Run("async", func(t *testing.T) {
		eng := &fakeEngine{handler: handler}
		p := New(eng, "https://api.example.com", pagedMethod(0, 1, params.LimitAtCount(5)), bodyMapper)
		future := p.ProcessAsync(context.Background(), nil)
		consumer, err := future.Wait(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertItems(t, consumer.Items(), want)
	})
}

func assertItems(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestProcess_TransportFailure_NoPartialResult(t *testing.T) {
	transportErr := engine.NewConnectionError(errors.New("connection reset"))
	eng := &fakeEngine{handler: func(call int, req engine.Request) (*engine.Response, error) {
		if call == 2 {
			return nil, transportErr
		}
		return &engine.Response{StatusCode: 200, Body: []byte("ok")}, nil
	}}

	p := New(eng, "https://api.example.com", pagedMethod(0, 1, params.LimitAtCount(10)), bodyMapper)
	consumer, err := p.Process(context.Background(), nil)
	if !errors.Is(err, transportErr) {
		t.Fatalf("transport error must propagate unmodified, got %v", err)
	}
	if consumer != nil {
		t.Errorf("results from iterations before the failure must be discarded, got %d", consumer.Len())
	}
}

func TestProcess_MapperFailure_Propagates(t *testing.T) {
	mapErr := errors.New("bad payload")
	eng := &fakeEngine{handler: func(call int, req engine.Request) (*engine.Response, error) {
		return &engine.Response{StatusCode: 200, Body: []byte("x")}, nil
	}}

	p := New(eng, "https://api.example.com", pagedMethod(0, 1, params.LimitAtCount(10)),
		func(resp *engine.Response) (string, error) { return "", mapErr })
	consumer, err := p.Process(context.Background(), nil)
	if !errors.Is(err, mapErr) {
		t.Fatalf("mapper error must propagate, got %v", err)
	}
	if consumer != nil {
		t.Error("no partial result on mapper failure")
	}
}

func TestInterrupt_StopsAfterStartedIteration(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	eng := &fakeEngine{handler: func(call int, req engine.Request) (*engine.Response, error) {
		if call == 1 {
			close(started)
			<-release
		}
		return &engine.Response{StatusCode: 200, Body: []byte(fmt.Sprintf("r%d", call))}, nil
	}}

	p := New(eng, "https://api.example.com", pagedMethod(0, 1, params.LimitAtCount(1000)), bodyMapper)
	future := p.ProcessAsync(context.Background(), nil)

	<-started
	p.Interrupt()
	close(release)

	consumer, err := future.Wait(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The iteration in flight when Interrupt was called still lands;
	// no new iteration starts.
	if consumer.Len() != 2 {
		t.Fatalf("expected 2 results (iterations 0 and 1), got %d", consumer.Len())
	}
	if eng.callCount() != 2 {
		t.Errorf("no round trip may start after the interrupt boundary, got %d", eng.callCount())
	}
	if p.State() != StoppedByInterrupt {
		t.Errorf("expected StoppedByInterrupt, got %s", p.State())
	}
}

func TestInterrupt_WinsStateLabelOverLimit(t *testing.T) {
	eng := &fakeEngine{handler: func(call int, req engine.Request) (*engine.Response, error) {
		return &engine.Response{StatusCode: 200, Body: []byte("x")}, nil
	}}

	// Limit stops on the very first response; the pre-set interrupt
	// flag is checked after the decision and wins the state label.
	p := New(eng, "https://api.example.com", pagedMethod(0, 1, params.LimitAtCount(0)), bodyMapper)
	p.Interrupt()

	consumer, err := p.Process(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if consumer.Len() != 0 {
		t.Errorf("the limit-triggering response stays discarded, got %d results", consumer.Len())
	}
	if p.State() != StoppedByInterrupt {
		t.Errorf("expected StoppedByInterrupt, got %s", p.State())
	}
}

func TestInterrupt_NoEffectOnStoppedProcessor(t *testing.T) {
	eng := &fakeEngine{handler: func(call int, req engine.Request) (*engine.Response, error) {
		return &engine.Response{StatusCode: 200, Body: []byte("x")}, nil
	}}

	p := New(eng, "https://api.example.com", pagedMethod(0, 1, params.LimitAtCount(2)), bodyMapper)
	if _, err := p.Process(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.Interrupt()
	if p.State() != StoppedByLimit {
		t.Errorf("interrupt after stop must not relabel the state, got %s", p.State())
	}
}

func TestProcess_Hooks(t *testing.T) {
	eng := &fakeEngine{handler: func(call int, req engine.Request) (*engine.Response, error) {
		return &engine.Response{StatusCode: 200, Body: []byte("x")}, nil
	}}

	var order []string
	p := New(eng, "https://api.example.com", pagedMethod(0, 1, params.LimitAtCount(1)), bodyMapper,
		WithRequestHook[string](func(d *request.Descriptor) error {
			order = append(order, "req")
			d.SetHeader("X-Hooked", "1")
			return nil
		}),
		WithResponseHook[string](func(resp *engine.Response) error {
			order = append(order, "resp")
			return nil
		}),
	)

	if _, err := p.Process(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := eng.calls[0].Header.Get("X-Hooked"); got != "1" {
		t.Errorf("request hook must mutate the descriptor, got %q", got)
	}
	if len(order) < 2 || order[0] != "req" || order[1] != "resp" {
		t.Errorf("expected req before resp, got %v", order)
	}
}

func TestProcess_ResponseHookError_Aborts(t *testing.T) {
	hookErr := errors.New("session gone")
	eng := &fakeEngine{handler: func(call int, req engine.Request) (*engine.Response, error) {
		return &engine.Response{StatusCode: 200, Body: []byte("x")}, nil
	}}

	p := New(eng, "https://api.example.com", pagedMethod(0, 1, params.LimitAtCount(10)), bodyMapper,
		WithResponseHook[string](func(resp *engine.Response) error { return hookErr }),
	)
	if _, err := p.Process(context.Background(), nil); !errors.Is(err, hookErr) {
		t.Errorf("response hook error must abort the run, got %v", err)
	}
}

func TestFuture_WaitHonorsContextWithoutStoppingRun(t *testing.T) {
	release := make(chan struct{})
	eng := &fakeEngine{handler: func(call int, req engine.Request) (*engine.Response, error) {
		if call == 0 {
			<-release
		}
		return &engine.Response{StatusCode: 200, Body: []byte("x")}, nil
	}}

	p := New(eng, "https://api.example.com", pagedMethod(0, 1, params.LimitAtCount(1)), bodyMapper)
	future := p.ProcessAsync(context.Background(), nil)

	waitCtx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := future.Wait(waitCtx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline on the wait, got %v", err)
	}

	// The run was not stopped by the abandoned wait.
	close(release)
	consumer, err := future.Wait(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if consumer.Len() != 1 {
		t.Errorf("expected the run to finish normally, got %d results", consumer.Len())
	}
}

func TestProcess_CallerSetCountableWins(t *testing.T) {
	eng := &fakeEngine{handler: func(call int, req engine.Request) (*engine.Response, error) {
		return &engine.Response{StatusCode: 200, Body: []byte("x")}, nil
	}}

	// Method spec would start at page 0; the caller-supplied countable
	// starting at 7 takes precedence.
	set := params.NewSet(params.NewCountable("page", "page", 7, 1, params.LimitAtCount(9)))
	p := New(eng, "https://api.example.com", pagedMethod(0, 1, params.LimitAtCount(100)), bodyMapper)
	consumer, err := p.Process(context.Background(), set)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if consumer.Len() != 2 {
		t.Fatalf("expected counts 7 and 8 accepted, got %d", consumer.Len())
	}
	if !strings.Contains(eng.calls[0].URL, "page=7") {
		t.Errorf("expected caller initial count, got %s", eng.calls[0].URL)
	}
}
