package value

import "bennypowers.dev/cssval/internal/collections"

// namedColors holds the CSS named colours with each legacy alias mapped
// to its canonical spelling, plus transparent and currentcolor
var namedColors = collections.NewKeywords(
	"aliceblue", "antiquewhite", "aquamarine", "azure",
	"beige", "bisque", "black", "blanchedalmond", "blue", "blueviolet", "brown", "burlywood",
	"cadetblue", "chartreuse", "chocolate", "coral", "cornflowerblue", "cornsilk", "crimson", "cyan",
	"darkblue", "darkcyan", "darkgoldenrod", "darkgray", "darkgreen", "darkkhaki", "darkmagenta",
	"darkolivegreen", "darkorange", "darkorchid", "darkred", "darksalmon", "darkseagreen",
	"darkslateblue", "darkslategray", "darkturquoise", "darkviolet", "deeppink", "deepskyblue",
	"dimgray", "dodgerblue",
	"firebrick", "floralwhite", "forestgreen",
	"gainsboro", "ghostwhite", "gold", "goldenrod", "gray", "green", "greenyellow",
	"honeydew", "hotpink",
	"indianred", "indigo", "ivory",
	"khaki",
	"lavender", "lavenderblush", "lawngreen", "lemonchiffon", "lightblue", "lightcoral", "lightcyan",
	"lightgoldenrodyellow", "lightgray", "lightgreen", "lightpink", "lightsalmon", "lightseagreen",
	"lightskyblue", "lightslategray", "lightsteelblue", "lightyellow", "lime", "limegreen", "linen",
	"magenta", "maroon", "mediumaquamarine", "mediumblue", "mediumorchid", "mediumpurple",
	"mediumseagreen", "mediumslateblue", "mediumspringgreen", "mediumturquoise", "mediumvioletred",
	"midnightblue", "mintcream", "mistyrose", "moccasin",
	"navajowhite", "navy",
	"oldlace", "olive", "olivedrab", "orange", "orangered", "orchid",
	"palegoldenrod", "palegreen", "paleturquoise", "palevioletred", "papayawhip", "peachpuff", "peru",
	"pink", "plum", "powderblue", "purple",
	"rebeccapurple", "red", "rosybrown", "royalblue",
	"saddlebrown", "salmon", "sandybrown", "seagreen", "seashell", "sienna", "silver", "skyblue",
	"slateblue", "slategray", "snow", "springgreen", "steelblue",
	"tan", "teal", "thistle", "tomato", "turquoise",
	"violet",
	"wheat", "white", "whitesmoke",
	"yellow", "yellowgreen",
	"transparent", "currentcolor",
).
	Alias("aqua", "cyan").
	Alias("fuchsia", "magenta").
	Alias("grey", "gray").
	Alias("darkgrey", "darkgray").
	Alias("darkslategrey", "darkslategray").
	Alias("dimgrey", "dimgray").
	Alias("lightgrey", "lightgray").
	Alias("lightslategrey", "lightslategray").
	Alias("slategrey", "slategray")

// NamedColors returns the canonical colour names in ascending order
func NamedColors() []string {
	return namedColors.Canonical()
}
