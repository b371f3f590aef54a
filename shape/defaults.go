package shape

// Defaults 内置方块集合, 没有配置方块目录时使用
func Defaults() []*Shape {
	return []*Shape{
		MustFromRows("dot", "#f4d35e", "#"),

		MustFromRows("line2", "#5fa8d3", "##"),
		MustFromRows("line2v", "#5fa8d3", "#", "#"),
		MustFromRows("line3", "#62b6cb", "###"),
		MustFromRows("line3v", "#62b6cb", "#", "#", "#"),
		MustFromRows("line4", "#1b98e0", "####"),
		MustFromRows("line4v", "#1b98e0", "#", "#", "#", "#"),
		MustFromRows("line5", "#247ba0", "#####"),
		MustFromRows("line5v", "#247ba0", "#", "#", "#", "#", "#"),

		MustFromRows("square2", "#f25f5c", "##", "##"),
		MustFromRows("square3", "#ee6c4d", "###", "###", "###"),
		MustFromRows("rect23", "#e76f51", "###", "###"),
		MustFromRows("rect32", "#e76f51", "##", "##", "##"),

		MustFromRows("corner2", "#70c1b3", "##", "#."),
		MustFromRows("corner2b", "#70c1b3", "##", ".#"),
		MustFromRows("corner2c", "#70c1b3", "#.", "##"),
		MustFromRows("corner2d", "#70c1b3", ".#", "##"),
		MustFromRows("corner3", "#2a9d8f", "###", "#..", "#.."),
		MustFromRows("corner3b", "#2a9d8f", "###", "..#", "..#"),
		MustFromRows("corner3c", "#2a9d8f", "#..", "#..", "###"),
		MustFromRows("corner3d", "#2a9d8f", "..#", "..#", "###"),

		MustFromRows("L", "#ff9f1c", "#.", "#.", "##"),
		MustFromRows("J", "#3d5a80", ".#", ".#", "##"),
		MustFromRows("T", "#9b5de5", "###", ".#."),
		MustFromRows("S", "#00bb77", ".##", "##."),
		MustFromRows("Z", "#ef476f", "##.", ".##"),
	}
}
