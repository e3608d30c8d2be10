package poi

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-nav/engine/camera"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrUnknownPointOfInterest is returned when a name is not registered.
	ErrUnknownPointOfInterest = errors.New("unknown point of interest")
	// ErrEmptyName is returned when adding a point of interest without a name.
	ErrEmptyName = errors.New("point of interest name is empty")
)

// PointOfInterest is a named viewpoint. Angles are in degrees, matching pose snapshots.
type PointOfInterest struct {
	Name     string     `yaml:"name"`
	Position [3]float32 `yaml:"position"`
	YawDeg   float32    `yaml:"yaw_deg"`
	PitchDeg float32    `yaml:"pitch_deg"`
}

// Target converts the point of interest into a navigation target.
//
// Returns:
//   - camera.NavigationTarget: the target in radians
func (p PointOfInterest) Target() camera.NavigationTarget {
	return camera.TargetFromDegrees(mgl32.Vec3(p.Position), p.YawDeg, p.PitchDeg)
}

// Navigator is anything that can start a transition, typically a camera.CameraController.
type Navigator interface {
	NavigateTo(target camera.NavigationTarget)
}

// Registry holds points of interest in insertion order.
type Registry interface {
	// Add registers a point of interest, replacing any existing one with the same name
	// while keeping its original position in the order.
	//
	// Parameters:
	//   - p: the point of interest
	//
	// Returns:
	//   - error: ErrEmptyName if p.Name is empty
	Add(p PointOfInterest) error

	// Get looks up a point of interest by name.
	//
	// Parameters:
	//   - name: the point of interest name
	//
	// Returns:
	//   - PointOfInterest: the registered point
	//   - bool: false if no point has that name
	Get(name string) (PointOfInterest, bool)

	// Remove deletes a point of interest.
	//
	// Parameters:
	//   - name: the point of interest name
	//
	// Returns:
	//   - bool: true if a point was removed
	Remove(name string) bool

	// Names returns every registered name in insertion order.
	Names() []string

	// Len returns the number of registered points.
	Len() int

	// At returns the point at the given insertion index.
	//
	// Parameters:
	//   - index: zero-based position in insertion order
	//
	// Returns:
	//   - PointOfInterest: the point at index
	//   - bool: false if index is out of range
	At(index int) (PointOfInterest, bool)

	// Next advances the cursor to the point after the last one visited, wrapping to the first.
	//
	// Returns:
	//   - PointOfInterest: the next point
	//   - bool: false if the registry is empty
	Next() (PointOfInterest, bool)

	// Target returns the navigation target of a named point.
	//
	// Parameters:
	//   - name: the point of interest name
	//
	// Returns:
	//   - camera.NavigationTarget: the target in radians
	//   - error: an error wrapping ErrUnknownPointOfInterest if not registered
	Target(name string) (camera.NavigationTarget, error)

	// NavigateTo starts a transition on nav toward the named point and moves the cursor to it.
	//
	// Parameters:
	//   - nav: the controller to drive
	//   - name: the point of interest name
	//
	// Returns:
	//   - error: an error wrapping ErrUnknownPointOfInterest if not registered
	NavigateTo(nav Navigator, name string) error
}

type registryImpl struct {
	mu     *sync.Mutex
	points *orderedmap.OrderedMap[string, PointOfInterest]
	cursor string
}

var _ Registry = &registryImpl{}

// NewRegistry creates a registry seeded with points, in order.
//
// Parameters:
//   - points: initial points of interest
//
// Returns:
//   - Registry: the registry
//   - error: ErrEmptyName if any point is unnamed
func NewRegistry(points ...PointOfInterest) (Registry, error) {
	r := &registryImpl{
		mu:     &sync.Mutex{},
		points: orderedmap.NewOrderedMap[string, PointOfInterest](),
	}
	for i, p := range points {
		if err := r.Add(p); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
	}
	return r, nil
}

func (r *registryImpl) Add(p PointOfInterest) error {
	if p.Name == "" {
		return ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.points.Set(p.Name, p)
	return nil
}

func (r *registryImpl) Get(name string) (PointOfInterest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.points.Get(name)
}

func (r *registryImpl) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.points.Delete(name)
}

func (r *registryImpl) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, r.points.Len())
	for el := r.points.Front(); el != nil; el = el.Next() {
		names = append(names, el.Key)
	}
	return names
}

func (r *registryImpl) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.points.Len()
}

func (r *registryImpl) At(index int) (PointOfInterest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 {
		return PointOfInterest{}, false
	}
	i := 0
	for el := r.points.Front(); el != nil; el = el.Next() {
		if i == index {
			return el.Value, true
		}
		i++
	}
	return PointOfInterest{}, false
}

func (r *registryImpl) Next() (PointOfInterest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.points.Front()
	if cur := r.points.GetElement(r.cursor); cur != nil && cur.Next() != nil {
		next = cur.Next()
	}
	if next == nil {
		return PointOfInterest{}, false
	}
	r.cursor = next.Key
	return next.Value, true
}

func (r *registryImpl) Target(name string) (camera.NavigationTarget, error) {
	p, ok := r.Get(name)
	if !ok {
		return camera.NavigationTarget{}, fmt.Errorf("%w: %q", ErrUnknownPointOfInterest, name)
	}
	return p.Target(), nil
}

func (r *registryImpl) NavigateTo(nav Navigator, name string) error {
	target, err := r.Target(name)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.cursor = name
	r.mu.Unlock()
	nav.NavigateTo(target)
	return nil
}
