package scene

import (
	"github.com/Carmen-Shannon/oxy-look/engine/game_object"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.Add(obj)
		}
	}
}

// WithBehaviors attaches initial behaviors to the scene.
//
// Parameters:
//   - behaviors: the behaviors to attach, in tick order
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBehaviors(behaviors ...Behavior) SceneBuilderOption {
	return func(s *scene) {
		for _, b := range behaviors {
			s.AddBehavior(b)
		}
	}
}
