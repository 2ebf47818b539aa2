//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package perm

// roundKeys holds the fixed AES-256 key schedule in the fixsliced
// representation. Round i uses the words roundKeys[8*i:8*i+8].
var roundKeys = [120]uint32{
	0xf0033f0c, 0xcfcc3c0c, 0x3fcff330, 0xcff3fffc,
	0xcfcff3f0, 0xf0f30f03, 0xf3cc0033, 0x000000c0,
	0xc3333000, 0x0ccccffc, 0xfc03f330, 0x3c03303f,
	0xcf0f0cf3, 0xc30ff0f3, 0xfc3c00c3, 0xc0fccccf,
	0x03ff3f03, 0xc3c33f03, 0x3f3cfc0f, 0x3ccf3333,
	0x3c3cfc30, 0xfc30cf00, 0x03c3ff0f, 0xff00ffc0,
	0x3f3c0c33, 0x0f0f3f00, 0xc0f033f0, 0x3f0f3ff3,
	0x30fcff30, 0x3f30cf03, 0x0c3f33f3, 0x003cc3c3,
	0xc3ff03cc, 0xc00c0333, 0xcf0c3cfc, 0xc0c3f00f,
	0xc0f3c3f0, 0xf03cff33, 0xc30c00cf, 0x330033c0,
	0xc33f0fc3, 0xfc300033, 0xc330f0cf, 0x0ffccc30,
	0xc0c333f0, 0xc3330333, 0xcccfc3fc, 0xff0c0c3f,
	0xc0ff330f, 0xc03033c3, 0xc3fc3f33, 0x0cc0fcfc,
	0x0c30f330, 0xcf3f00c3, 0x3fcfccf0, 0xf0ff0f3f,
	0xc030030c, 0xf33333c3, 0xf30003c3, 0xcf3c3cf0,
	0xffc0f030, 0xc0c3fcc3, 0x0fffc000, 0x33f3fff3,
	0xcfff3c30, 0x30c3c3f3, 0xf3cccff0, 0x3f3fc333,
	0x3f0f0c0f, 0xffc0330c, 0x03f00ffc, 0xfc33cff3,
	0x0f333f30, 0x00c3c30c, 0xcc000cc0, 0xf3f3c030,
	0x333003f0, 0xf0f30cf3, 0xfc0033cc, 0xf0c0cccf,
	0xf0fff33c, 0xc3f3c003, 0xfcc33ccf, 0xc0f30c0f,
	0x3ffc30fc, 0xff0cc330, 0x33fc0300, 0x330fc3cf,
	0xfcc3c33c, 0xccf33f30, 0x3c00ffc0, 0xf0c0c30f,
	0x0fff3030, 0xcf0c33fc, 0xf3333c0f, 0xfc303cc3,
	0xcf00c0c0, 0x3f0330cc, 0x3cc0c0c3, 0xfc303ffc,
	0xcf33ffcc, 0xffcf3f3c, 0x3cffc3cc, 0xf003f3c3,
	0x30f33f3f, 0x0ff3ff3c, 0x3fff333f, 0x03cff303,
	0x303303f0, 0xc0c0c3ff, 0xffc30c30, 0xfc00c03f,
	0xf0cc0c0c, 0x3fcc3c0f, 0xf33fc03f, 0x330f0c33,
	0xc30f333c, 0x000fc0c0, 0x3f00f3f0, 0xcfff303f,
}
