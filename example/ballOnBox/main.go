package main

import (
	"fmt"

	"github.com/akmonengine/narrowphase"
	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/contact"
	"github.com/go-gl/mathgl/mgl64"
)

// SetupScene creates a ball falling on a box, and a cube resting next to it
func SetupScene() (*narrowphase.World, *actor.RigidBody) {
	world := &narrowphase.World{
		Workers:    2,
		Prediction: contact.NewContactPrediction(0.05),
		Events:     narrowphase.NewEvents(),
	}

	ground := actor.NewRigidBody(
		actor.NewTransformAt(mgl64.Vec3{0, -1, 0}, mgl64.QuatIdent()),
		&actor.Box{HalfExtents: mgl64.Vec3{10, 1, 10}},
		actor.BodyTypeStatic,
	)
	ball := actor.NewRigidBody(
		actor.NewTransformAt(mgl64.Vec3{0, 1, 0}, mgl64.QuatIdent()),
		&actor.Sphere{Radius: 0.5},
		actor.BodyTypeDynamic,
	)
	cube := actor.NewRigidBody(
		actor.NewTransformAt(mgl64.Vec3{3, 0.49, 0}, mgl64.QuatRotate(0.3, mgl64.Vec3{0, 1, 0})),
		&actor.Box{HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}},
		actor.BodyTypeDynamic,
	)

	world.AddBody(ground)
	world.AddBody(ball)
	world.AddBody(cube)

	world.Events.Subscribe(narrowphase.COLLISION_ENTER, func(event narrowphase.Event) {
		e := event.(narrowphase.CollisionEnterEvent)
		fmt.Printf("enter: %T / %T\n", e.BodyA.Shape, e.BodyB.Shape)
	})
	world.Events.Subscribe(narrowphase.COLLISION_EXIT, func(event narrowphase.Event) {
		e := event.(narrowphase.CollisionExitEvent)
		fmt.Printf("exit: %T / %T\n", e.BodyA.Shape, e.BodyB.Shape)
	})

	return world, ball
}

func main() {
	world, ball := SetupScene()

	// the ball is moved by hand: down through the ground, then back up
	heights := []float64{1, 0.6, 0.52, 0.48, 0.45, 0.48, 0.6, 1}
	for step, y := range heights {
		ball.SetTransform(actor.NewTransformAt(mgl64.Vec3{0, y, 0}, mgl64.QuatIdent()))

		fmt.Printf("--- step %d, ball at y=%.2f\n", step, y)
		for _, pair := range world.Step() {
			for _, manifold := range pair.Manifolds {
				for _, tc := range manifold.Contacts() {
					fmt.Printf("   %T/%T id=%d normal=%v depth=%.4f\n",
						pair.BodyA.Shape, pair.BodyB.Shape, tc.ID, tc.Contact.Normal, tc.Contact.Depth)
				}
			}
		}
	}
}
