package host

// Buttons is a bitmask of the device's buttons.
type Buttons uint32

const (
	ButtonLeft Buttons = 1 << iota
	ButtonRight
	ButtonUp
	ButtonDown
	ButtonB
	ButtonA
)

// ButtonSet is one frame's button state as reported by the host. Pushed and
// Released also capture taps that began and ended between two ticks, which a
// diff of Current across frames would miss.
type ButtonSet struct {
	Current  Buttons
	Pushed   Buttons
	Released Buttons
}

// Peripherals selects which optional input devices the host should sample.
type Peripherals uint32

const (
	PeripheralNone          Peripherals = 0
	PeripheralAccelerometer Peripherals = 1 << (iota - 1)

	PeripheralAll Peripherals = ^Peripherals(0)
)

// Color is a solid drawing color.
type Color uint8

const (
	ColorBlack Color = iota
	ColorWhite
	ColorClear
	ColorXOR
)

// BitmapFlip mirrors a bitmap when drawing.
type BitmapFlip uint8

const (
	Unflipped BitmapFlip = iota
	FlippedX
	FlippedY
	FlippedXY
)

// BitmapDrawMode changes how bitmap pixels combine with the framebuffer.
type BitmapDrawMode uint8

const (
	DrawModeCopy BitmapDrawMode = iota
	DrawModeWhiteTransparent
	DrawModeBlackTransparent
	DrawModeFillWhite
	DrawModeFillBlack
	DrawModeXOR
	DrawModeNXOR
	DrawModeInverted
)

// OpenMode selects where a file is opened from and how.
type OpenMode uint8

const (
	// ModeRead searches the game's pdx image, then its data directory.
	ModeRead OpenMode = iota
	// ModeReadData searches only the data directory.
	ModeReadData
	ModeWrite
	ModeAppend
)

// FileStat describes a file in the game's filesystem.
type FileStat struct {
	IsDir bool
	Size  uint32
}

// Language is the system language configured on the device.
type Language uint8

const (
	LanguageEnglish Language = iota
	LanguageJapanese
)
