// pkg/physics/collision.go
package physics

import "math"

// BoundingSphere is a spherical collision shape. It is built fresh from an
// entity's current position for every query.
type BoundingSphere struct {
	Center Point3
	Radius float64
}

// Ray is a half-line starting at Origin. Direction must be unit length.
type Ray struct {
	Origin    Point3
	Direction Direction3
}

// BoundingCylinder is a cylinder whose axis is parallel to world Y.
// Center is the midpoint of the axis segment.
type BoundingCylinder struct {
	Center Point3
	Radius float64
	Height float64
}

// SquaredDistance returns the squared Euclidean distance between two points
func SquaredDistance(p1, p2 Point3) float64 {
	return p1.DistanceSquared(p2)
}

// SphereVsSphere reports whether two spheres overlap. Touching counts.
func SphereVsSphere(s1, s2 BoundingSphere) bool {
	radiusSum := s1.Radius + s2.Radius
	return SquaredDistance(s1.Center, s2.Center) <= radiusSum*radiusSum
}

// PointVsSphere reports whether p lies inside or on the sphere
func PointVsSphere(p Point3, s BoundingSphere) bool {
	return SquaredDistance(p, s.Center) <= s.Radius*s.Radius
}

// RayVsSphere intersects a ray with a sphere and returns the smallest
// non-negative hit parameter. Hits behind the origin are not reported.
func RayVsSphere(ray Ray, sphere BoundingSphere) (bool, float64) {
	l := ray.Origin.Sub(sphere.Center)

	// Direction is unit length, so the quadratic's leading coefficient is 1.
	b := 2 * ray.Direction.Dot(l)
	c := l.LengthSquared() - sphere.Radius*sphere.Radius

	discriminant := b*b - 4*c
	if discriminant < 0 {
		return false, 0
	}

	sqrtDiscriminant := math.Sqrt(discriminant)
	t1 := (-b - sqrtDiscriminant) / 2
	t2 := (-b + sqrtDiscriminant) / 2

	t := math.Inf(1)
	if t1 >= 0 {
		t = t1
	}
	if t2 >= 0 && t2 < t {
		t = t2
	}
	if math.IsInf(t, 1) {
		return false, 0
	}
	return true, t
}

// SegmentVsSphere is RayVsSphere bounded to [0, length] along the ray
func SegmentVsSphere(ray Ray, length float64, sphere BoundingSphere) (bool, float64) {
	hit, t := RayVsSphere(ray, sphere)
	if !hit || t > length {
		return false, 0
	}
	return true, t
}

// CylinderVsSphere tests a world-vertical cylinder against a sphere by
// combining a horizontal (XZ) radial test with a vertical interval test.
func CylinderVsSphere(cyl BoundingCylinder, sphere BoundingSphere) bool {
	// Radial check in the cylinder's horizontal plane
	projected := Point3{X: sphere.Center.X, Y: cyl.Center.Y, Z: sphere.Center.Z}
	radialSum := cyl.Radius + sphere.Radius
	if SquaredDistance(cyl.Center, projected) > radialSum*radialSum {
		return false
	}

	// Vertical interval overlap
	halfHeight := cyl.Height / 2
	cylMinY := cyl.Center.Y - halfHeight
	cylMaxY := cyl.Center.Y + halfHeight
	sphereMinY := sphere.Center.Y - sphere.Radius
	sphereMaxY := sphere.Center.Y + sphere.Radius

	return !(sphereMaxY < cylMinY || sphereMinY > cylMaxY)
}
