package epd2in7

// step is one command and its parameters in an initialization sequence.
type step struct {
	cmd  byte
	data []byte
}

// powerUp is sent after reset, before POWER ON.
var powerUp = []step{
	{cmdPowerSetting, []byte{0x03, 0x00, 0x2B, 0x2B, 0x09}},
	{cmdBoosterSoftStart, []byte{0x07, 0x07, 0x17}},
	{cmdPowerOptimization, []byte{0x60, 0xA5}},
	{cmdPowerOptimization, []byte{0x89, 0xA5}},
	{cmdPowerOptimization, []byte{0x90, 0x00}},
	{cmdPowerOptimization, []byte{0x93, 0x2A}},
	{cmdPowerOptimization, []byte{0xA0, 0xA5}},
	{cmdPowerOptimization, []byte{0xA1, 0x00}},
	{cmdPowerOptimization, []byte{0x73, 0x41}},
	{cmdPartialDisplayRefresh, []byte{0x00}},
}

// panelSetup is sent once the charge pump is up.
var panelSetup = []step{
	{cmdPanelSetting, []byte{0xAF}}, // KW mode, LUT from register
	{cmdPLLControl, []byte{0x3A}},   // 100Hz
	{cmdVCMDCSetting, []byte{0x12}},
	{cmdLUTVCOM, lutVCOMDC},
	{cmdLUTWW, lutWW},
	{cmdLUTBW, lutBW},
	{cmdLUTBB, lutBB},
	{cmdLUTWB, lutWB},
}

// Waveform tables for a full black/white refresh.
var (
	lutVCOMDC = []byte{
		0x00, 0x00,
		0x00, 0x0F, 0x0F, 0x00, 0x00, 0x05,
		0x00, 0x32, 0x32, 0x00, 0x00, 0x02,
		0x00, 0x0F, 0x0F, 0x00, 0x00, 0x05,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	lutWW = []byte{
		0x50, 0x0F, 0x0F, 0x00, 0x00, 0x05,
		0x60, 0x32, 0x32, 0x00, 0x00, 0x02,
		0xA0, 0x0F, 0x0F, 0x00, 0x00, 0x05,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	lutBW = lutWW

	lutBB = []byte{
		0xA0, 0x0F, 0x0F, 0x00, 0x00, 0x05,
		0x60, 0x32, 0x32, 0x00, 0x00, 0x02,
		0x50, 0x0F, 0x0F, 0x00, 0x00, 0x05,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	lutWB = lutBB
)
