package elements

import "github.com/hubastard/atomview/engine/colors"

// table holds Jmol colors and covalent radii (Å) indexed by atomic number.
// Index 0 is unused.
var table = [...]Element{
	{},
	{1, "H", colors.Hex(0xFFFFFF), 0.31},
	{2, "He", colors.Hex(0xD9FFFF), 0.28},
	{3, "Li", colors.Hex(0xCC80FF), 1.28},
	{4, "Be", colors.Hex(0xC2FF00), 0.96},
	{5, "B", colors.Hex(0xFFB5B5), 0.84},
	{6, "C", colors.Hex(0x909090), 0.76},
	{7, "N", colors.Hex(0x3050F8), 0.71},
	{8, "O", colors.Hex(0xFF0D0D), 0.66},
	{9, "F", colors.Hex(0x90E050), 0.57},
	{10, "Ne", colors.Hex(0xB3E3F5), 0.58},
	{11, "Na", colors.Hex(0xAB5CF2), 1.66},
	{12, "Mg", colors.Hex(0x8AFF00), 1.41},
	{13, "Al", colors.Hex(0xBFA6A6), 1.21},
	{14, "Si", colors.Hex(0xF0C8A0), 1.11},
	{15, "P", colors.Hex(0xFF8000), 1.07},
	{16, "S", colors.Hex(0xFFFF30), 1.05},
	{17, "Cl", colors.Hex(0x1FF01F), 1.02},
	{18, "Ar", colors.Hex(0x80D1E3), 1.06},
	{19, "K", colors.Hex(0x8F40D4), 2.03},
	{20, "Ca", colors.Hex(0x3DFF00), 1.76},
	{21, "Sc", colors.Hex(0xE6E6E6), 1.70},
	{22, "Ti", colors.Hex(0xBFC2C7), 1.60},
	{23, "V", colors.Hex(0xA6A6AB), 1.53},
	{24, "Cr", colors.Hex(0x8A99C7), 1.39},
	{25, "Mn", colors.Hex(0x9C7AC7), 1.39},
	{26, "Fe", colors.Hex(0xE06633), 1.32},
	{27, "Co", colors.Hex(0xF090A0), 1.26},
	{28, "Ni", colors.Hex(0x50D050), 1.24},
	{29, "Cu", colors.Hex(0xC88033), 1.32},
	{30, "Zn", colors.Hex(0x7D80B0), 1.22},
	{31, "Ga", colors.Hex(0xC28F8F), 1.22},
	{32, "Ge", colors.Hex(0x668F8F), 1.20},
	{33, "As", colors.Hex(0xBD80E3), 1.19},
	{34, "Se", colors.Hex(0xFFA100), 1.20},
	{35, "Br", colors.Hex(0xA62929), 1.20},
	{36, "Kr", colors.Hex(0x5CB8D1), 1.16},
	{37, "Rb", colors.Hex(0x702EB0), 2.20},
	{38, "Sr", colors.Hex(0x00FF00), 1.95},
	{39, "Y", colors.Hex(0x94FFFF), 1.90},
	{40, "Zr", colors.Hex(0x94E0E0), 1.75},
	{41, "Nb", colors.Hex(0x73C2C9), 1.64},
	{42, "Mo", colors.Hex(0x54B5B5), 1.54},
	{43, "Tc", colors.Hex(0x3B9E9E), 1.47},
	{44, "Ru", colors.Hex(0x248F8F), 1.46},
	{45, "Rh", colors.Hex(0x0A7D8C), 1.42},
	{46, "Pd", colors.Hex(0x006985), 1.39},
	{47, "Ag", colors.Hex(0xC0C0C0), 1.45},
	{48, "Cd", colors.Hex(0xFFD98F), 1.44},
	{49, "In", colors.Hex(0xA67573), 1.42},
	{50, "Sn", colors.Hex(0x668080), 1.39},
	{51, "Sb", colors.Hex(0x9E63B5), 1.39},
	{52, "Te", colors.Hex(0xD47A00), 1.38},
	{53, "I", colors.Hex(0x940094), 1.39},
	{54, "Xe", colors.Hex(0x429EB0), 1.40},
	{55, "Cs", colors.Hex(0x57178F), 2.44},
	{56, "Ba", colors.Hex(0x00C900), 2.15},
	{57, "La", colors.Hex(0x70D4FF), 2.07},
	{58, "Ce", colors.Hex(0xFFFFC7), 2.04},
	{59, "Pr", colors.Hex(0xD9FFC7), 2.03},
	{60, "Nd", colors.Hex(0xC7FFC7), 2.01},
	{61, "Pm", colors.Hex(0xA3FFC7), 1.99},
	{62, "Sm", colors.Hex(0x8FFFC7), 1.98},
	{63, "Eu", colors.Hex(0x61FFC7), 1.98},
	{64, "Gd", colors.Hex(0x45FFC7), 1.96},
	{65, "Tb", colors.Hex(0x30FFC7), 1.94},
	{66, "Dy", colors.Hex(0x1FFFC7), 1.92},
	{67, "Ho", colors.Hex(0x00FF9C), 1.92},
	{68, "Er", colors.Hex(0x00E675), 1.89},
	{69, "Tm", colors.Hex(0x00D452), 1.90},
	{70, "Yb", colors.Hex(0x00BF38), 1.87},
	{71, "Lu", colors.Hex(0x00AB24), 1.87},
	{72, "Hf", colors.Hex(0x4DC2FF), 1.75},
	{73, "Ta", colors.Hex(0x4DA6FF), 1.70},
	{74, "W", colors.Hex(0x2194D6), 1.62},
	{75, "Re", colors.Hex(0x267DAB), 1.51},
	{76, "Os", colors.Hex(0x266696), 1.44},
	{77, "Ir", colors.Hex(0x175487), 1.41},
	{78, "Pt", colors.Hex(0xD0D0E0), 1.36},
	{79, "Au", colors.Hex(0xFFD123), 1.36},
	{80, "Hg", colors.Hex(0xB8B8D0), 1.32},
	{81, "Tl", colors.Hex(0xA6544D), 1.45},
	{82, "Pb", colors.Hex(0x575961), 1.46},
	{83, "Bi", colors.Hex(0x9E4FB5), 1.48},
	{84, "Po", colors.Hex(0xAB5C00), 1.40},
	{85, "At", colors.Hex(0x754F45), 1.50},
	{86, "Rn", colors.Hex(0x428296), 1.50},
}
