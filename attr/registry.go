package attr

import "fmt"

// ServiceFace is the interface tag the codec recognizes in a
// {'Type':...,'ModuleName':...} dict when resolving service references.
const ServiceFace = "IService"

// Service is the live-object handle a ref value points at. Services are
// owned by whoever registered them; a ref never manages their lifetime.
type Service interface {
	// FaceName returns the interface tag, ServiceFace for plain services.
	FaceName() string
	// ObjName returns the name the service was registered under.
	ObjName() string
}

// Registry resolves module names to live services. It is consumed by the
// codec and the bridges when a parsed dict carries the ServiceFace tag.
type Registry interface {
	Resolve(name string) (Service, bool)
}

// MapRegistry is an in-memory Registry preserving registration order.
type MapRegistry struct {
	names  []string
	byName map[string]Service
}

// NewMapRegistry creates an empty registry.
func NewMapRegistry() *MapRegistry {
	return &MapRegistry{byName: make(map[string]Service)}
}

// Register adds svc under its object name. Duplicate names are rejected.
func (r *MapRegistry) Register(svc Service) error {
	name := svc.ObjName()
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("attr: module %q already registered", name)
	}
	r.names = append(r.names, name)
	r.byName[name] = svc
	return nil
}

// Resolve looks up a service by registered name.
func (r *MapRegistry) Resolve(name string) (Service, bool) {
	svc, ok := r.byName[name]
	return svc, ok
}

// Names returns the registered names in registration order.
func (r *MapRegistry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// StubService is a named placeholder Service for tooling and tests.
type StubService struct {
	Name string
}

func (s StubService) FaceName() string { return ServiceFace }
func (s StubService) ObjName() string  { return s.Name }
