package control

// PDController implements proportional-derivative steering toward the center of the frame
type PDController struct {
	Kp     float64
	Kd     float64
	Center int

	currentError float64
	lastError    float64
}

// NewPDController creates a PDController from the gains and center in cfg
func NewPDController(cfg Config) *PDController {
	return &PDController{
		Kp:     cfg.Kp,
		Kd:     cfg.Kd,
		Center: cfg.CenterPosition,
	}
}

// Update returns the steering correction for a face at position. A positive correction means
// the face is left of center. The output is not clamped
func (c *PDController) Update(position int) float64 {
	c.currentError = float64(c.Center - position)
	correction := c.Kp*c.currentError + c.Kd*(c.currentError-c.lastError)
	c.lastError = c.currentError
	return correction
}

// Reset clears the error history so the next Update has no derivative kick from before a halt
func (c *PDController) Reset() {
	c.currentError = 0
	c.lastError = 0
}

// LastError returns the error used by the most recent Update
func (c *PDController) LastError() float64 {
	return c.lastError
}
