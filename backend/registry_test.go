package backend

import (
	"errors"
	"log/slog"
	"slices"
	"testing"

	"github.com/gogpu/raytrace"
	"github.com/gogpu/raytrace/internal/logtest"
)

type fakeBackend struct {
	name   string
	closed bool
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Trace(rays []raytrace.Ray) ([]raytrace.Color, error) {
	return make([]raytrace.Color, len(rays)), nil
}

func (f *fakeBackend) Close() error {
	f.closed = true
	return nil
}

func fakeFactory(name string, setupErr error) Factory {
	return func(raytrace.Scene, ...raytrace.Option) (raytrace.Backend, error) {
		if setupErr != nil {
			return nil, setupErr
		}
		return &fakeBackend{name: name}, nil
	}
}

// isolate swaps the global registry for the duration of a test.
func isolate(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := factories
	factories = make(map[string]Factory)
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		factories = saved
		registryMu.Unlock()
	})
}

func TestRegisterAndUnregister(t *testing.T) {
	isolate(t)

	Register("b", fakeFactory("b", nil))
	Register("a", fakeFactory("a", nil))
	if !IsRegistered("a") || !IsRegistered("b") {
		t.Fatal("registered backends not reported")
	}
	if got := Available(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Available() = %v, want [a b]", got)
	}

	Unregister("a")
	if IsRegistered("a") {
		t.Error("Unregister did not remove backend")
	}
}

func TestOpen(t *testing.T) {
	isolate(t)
	Register(NameCPU, fakeFactory(NameCPU, nil))

	b, err := Open(NameCPU, raytrace.Scene{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if b.Name() != NameCPU {
		t.Errorf("Name() = %q, want %q", b.Name(), NameCPU)
	}

	if _, err := Open("missing", raytrace.Scene{}); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open(missing) error = %v, want ErrUnknownBackend", err)
	}
}

func TestOpenWrapsSetupError(t *testing.T) {
	isolate(t)
	setupErr := errors.New("no adapter")
	Register(NameWGPU, fakeFactory(NameWGPU, setupErr))

	_, err := Open(NameWGPU, raytrace.Scene{})
	if !errors.Is(err, setupErr) {
		t.Errorf("Open() error = %v, want wrapped %v", err, setupErr)
	}
}

func TestOpenDefaultPriority(t *testing.T) {
	tests := []struct {
		name     string
		register map[string]error
		want     string
		wantErr  error
	}{
		{
			name:     "device preferred",
			register: map[string]error{NameWGPU: nil, NameCPU: nil},
			want:     NameWGPU,
		},
		{
			name:     "fallback when device setup fails",
			register: map[string]error{NameWGPU: errors.New("no device"), NameCPU: nil},
			want:     NameCPU,
		},
		{
			name:     "unlisted backend used last",
			register: map[string]error{"custom": nil},
			want:     "custom",
		},
		{
			name:     "nothing sets up",
			register: map[string]error{NameWGPU: errors.New("no device")},
			wantErr:  ErrBackendNotAvailable,
		},
		{
			name:    "empty registry",
			wantErr: ErrBackendNotAvailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for name, err := range tt.register {
				Register(name, fakeFactory(name, err))
			}

			b, err := OpenDefault(raytrace.Scene{})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("OpenDefault() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenDefault() error = %v", err)
			}
			if b.Name() != tt.want {
				t.Errorf("OpenDefault() = %q, want %q", b.Name(), tt.want)
			}
		})
	}
}

func TestOpenDefaultLogsFallback(t *testing.T) {
	isolate(t)
	rec := logtest.Install(t)
	Register(NameWGPU, fakeFactory(NameWGPU, errors.New("no device")))
	Register(NameCPU, fakeFactory(NameCPU, nil))

	b, err := OpenDefault(raytrace.Scene{})
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	warn, ok := rec.Find("backend: setup failed, falling back")
	if !ok {
		t.Fatal("no fallback warning logged")
	}
	if warn.Level != slog.LevelWarn || warn.Attrs["backend"] != NameWGPU {
		t.Errorf("fallback record = %+v", warn)
	}
	if e, ok := rec.Find("backend: selected"); !ok || e.Attrs["backend"] != NameCPU {
		t.Errorf("selected record = %+v, %v; want cpu", e, ok)
	}
}
