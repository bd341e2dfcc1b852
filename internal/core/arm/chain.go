package arm

import "github.com/zeusync/armsim/internal/core/geometry"

// Segment is a drawn piece of the arm.
type Segment struct {
	Start geometry.Point
	End   geometry.Point
}

// Chain is the forward kinematics of a pose: every joint position, computed
// by projecting each link along its cumulative orientation.
type Chain struct {
	Base     geometry.Point
	Elbow    geometry.Point
	Effector geometry.Point
	// Gripper is the wrist bar centred on the effector. Both ends equal the
	// effector when the arm has no wrist.
	Gripper Segment
}

// Links returns link 1 and link 2 as segments.
func (c Chain) Links() [2]Segment {
	return [2]Segment{
		{Start: c.Base, End: c.Elbow},
		{Start: c.Elbow, End: c.Effector},
	}
}

// Forward projects the links of g at the given angles.
func Forward(g Geometry, a JointAngles) Chain {
	elbow := geometry.ProjectPoint(geometry.Origin, a.Theta1, g.Link1Length)
	effector := geometry.ProjectPoint(elbow, a.Link2Orientation(), g.Link2Length)

	half := g.WristLength / 2
	wrist := a.WristOrientation()
	return Chain{
		Base:     geometry.Origin,
		Elbow:    elbow,
		Effector: effector,
		Gripper: Segment{
			Start: geometry.ProjectPoint(effector, wrist, -half),
			End:   geometry.ProjectPoint(effector, wrist, half),
		},
	}
}
