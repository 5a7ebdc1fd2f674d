package sprite

// Built-in sprite art. Each frame is a character grid: '.' is transparent,
// every other rune maps through the sprite's palette. Grids are parsed and
// validated by Load.

type rgb struct {
	r, g, b uint8
}

// artSource is one sprite's character-grid definition.
type artSource struct {
	id      ID
	name    string
	palette map[byte]rgb
	frames  []string
}

var artSources = []artSource{
	{
		id:      Squid,
		name:    "squid",
		palette: map[byte]rgb{'X': {150, 90, 220}},
		frames: []string{`
...XXXX...
.XXXXXXXX.
XXXXXXXXXX
XXX.XX.XXX
XXXXXXXXXX
..X.XX.X..
.X.X..X.X.
X.X....X.X`, `
...XXXX...
.XXXXXXXX.
XXXXXXXXXX
XXX.XX.XXX
XXXXXXXXXX
...X..X...
..X.XX.X..
.X.X..X.X.`},
	},
	{
		id:      Crab,
		name:    "crab",
		palette: map[byte]rgb{'X': {235, 125, 50}},
		frames: []string{`
..X.....X..
...X...X...
..XXXXXXX..
.XX.XXX.XX.
XXXXXXXXXXX
X.XXXXXXX.X
X.X.....X.X
...XX.XX...`, `
..X.....X..
X..X...X..X
X.XXXXXXX.X
XXX.XXX.XXX
.XXXXXXXXX.
..XXXXXXX..
..X.....X..
.X.......X.`},
	},
	{
		id:      Octopus,
		name:    "octopus",
		palette: map[byte]rgb{'X': {80, 200, 170}},
		frames: []string{`
....XXXX....
.XXXXXXXXXX.
XXXXXXXXXXXX
XXX..XX..XXX
XXXXXXXXXXXX
...XX..XX...
..XX.XX.XX..
XX........XX`, `
....XXXX....
.XXXXXXXXXX.
XXXXXXXXXXXX
XXX..XX..XXX
XXXXXXXXXXXX
..XXX..XXX..
.XX..XX..XX.
..XX....XX..`},
	},
	{
		id:   Cannon,
		name: "cannon",
		palette: map[byte]rgb{
			'X': {80, 220, 80},
			'o': {140, 240, 140},
		},
		frames: []string{`
......o......
.....ooo.....
.....ooo.....
.XXXXXXXXXXX.
XXXXXXXXXXXXX
XXXXXXXXXXXXX
XXXXXXXXXXXXX
XXXXXXXXXXXXX`},
	},
	{
		id:      Shield,
		name:    "shield",
		palette: map[byte]rgb{'X': {60, 180, 60}},
		frames: []string{`
....XXXXXXXXXXXXXX....
...XXXXXXXXXXXXXXXX...
..XXXXXXXXXXXXXXXXXX..
.XXXXXXXXXXXXXXXXXXXX.
XXXXXXXXXXXXXXXXXXXXXX
XXXXXXXXXXXXXXXXXXXXXX
XXXXXXXXXXXXXXXXXXXXXX
XXXXXXXXXXXXXXXXXXXXXX
XXXXXXXXXXXXXXXXXXXXXX
XXXXXXXXXXXXXXXXXXXXXX
XXXXXXXXXXXXXXXXXXXXXX
XXXXXXXXXXXXXXXXXXXXXX
XXXXXXXX......XXXXXXXX
XXXXXXX........XXXXXXX
XXXXXX..........XXXXXX
XXXXXX..........XXXXXX`},
	},
	{
		id:      Bullet,
		name:    "bullet",
		palette: map[byte]rgb{'X': {240, 240, 240}},
		frames: []string{`
XX
XX
XX
XX
XX
XX`},
	},
	{
		id:      Laser,
		name:    "laser",
		palette: map[byte]rgb{'X': {240, 200, 80}},
		frames: []string{`
X..
.X.
..X
.X.
X..
.X.
..X
.X.`, `
..X
.X.
X..
.X.
..X
.X.
X..
.X.`},
	},
}
