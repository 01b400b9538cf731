package system

// System names used in dependency declarations.
const (
	NameMarineAcceleration    = "marine_acceleration"
	NameAttack                = "attack"
	NameBulletCollision       = "bullet_collision"
	NameMarineCollision       = "marine_collision"
	NameBulletAnimation       = "bullet_animation"
	NameBulletImpactAnimation = "bullet_impact_animation"
	NameMarineAnimation       = "marine_animation"
	NameCameraMotion          = "camera_motion"
)
