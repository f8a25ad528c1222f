package nes

// Pad button bits, A in bit 0 up to Right in bit 7.
const (
	ButtonA = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller models the $4016 pad. Writing the strobe bit high snapshots
// the pad and reads return its A button; dropping the strobe switches to
// serial mode and reads shift the snapshot out one bit at a time, A first.
type Controller struct {
	buttons byte
	serial  bool
}

func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) Write(value byte, hooks Hooks) {
	if value&1 == 1 {
		c.serial = false
		c.buttons = hooks.Buttons()
	} else {
		c.serial = true
	}
}

func (c *Controller) Read() byte {
	if !c.serial {
		return c.buttons & 1
	}
	bit := c.buttons & 1
	c.buttons >>= 1
	return bit
}
