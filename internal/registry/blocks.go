package registry

// BlockType is the 8-bit code stored per voxel. Zero is air.
type BlockType uint8

const (
	BlockTypeAir BlockType = iota
	BlockTypeDirt
	BlockTypeTopsoil
	BlockTypeGrass
	BlockTypeLeaves
	BlockTypeWood
	BlockTypeStone
	BlockTypeSand
	BlockTypeWater
	BlockTypeGlass
	BlockTypeBrick
	BlockTypeOre
	BlockTypeWoodRings
	BlockTypeWhite
	BlockTypeBlack
	BlockTypeXY

	// NumBlockTypes is the size of the catalog; build types cycle modulo this.
	NumBlockTypes = 16
)

// Transparency classes. Every value >= ClassAir is its own translucency
// group: a face between two blocks of the same group is hidden, a face
// between different groups is drawn.
const (
	ClassOpaque     = 0
	ClassSeeThrough = 1
	ClassAir        = 2
	ClassWater      = 3
	ClassGlass      = 4
)

// BlockDefinition defines the properties of a block type
type BlockDefinition struct {
	ID           BlockType
	Name         string
	Transparency int
	TextureTop   BlockType
	TextureSide  BlockType
	TextureBot   BlockType
}

// Blocks is the fixed catalog, indexed by BlockType.
var Blocks = [NumBlockTypes]BlockDefinition{
	{ID: BlockTypeAir, Name: "air", Transparency: ClassAir},
	{ID: BlockTypeDirt, Name: "dirt"},
	{ID: BlockTypeTopsoil, Name: "topsoil"},
	{ID: BlockTypeGrass, Name: "grass", TextureTop: BlockTypeGrass, TextureSide: BlockTypeTopsoil, TextureBot: BlockTypeDirt},
	{ID: BlockTypeLeaves, Name: "leaves", Transparency: ClassSeeThrough},
	{ID: BlockTypeWood, Name: "wood", TextureTop: BlockTypeWoodRings, TextureSide: BlockTypeWood, TextureBot: BlockTypeWoodRings},
	{ID: BlockTypeStone, Name: "stone"},
	{ID: BlockTypeSand, Name: "sand"},
	{ID: BlockTypeWater, Name: "water", Transparency: ClassWater},
	{ID: BlockTypeGlass, Name: "glass", Transparency: ClassGlass},
	{ID: BlockTypeBrick, Name: "brick"},
	{ID: BlockTypeOre, Name: "ore"},
	{ID: BlockTypeWoodRings, Name: "woodrings"},
	{ID: BlockTypeWhite, Name: "white"},
	{ID: BlockTypeBlack, Name: "black"},
	{ID: BlockTypeXY, Name: "x-y"},
}

func init() {
	// Blocks without explicit per-face textures use their own index everywhere.
	for i := range Blocks {
		def := &Blocks[i]
		if def.TextureTop == 0 && def.TextureSide == 0 && def.TextureBot == 0 {
			def.TextureTop, def.TextureSide, def.TextureBot = def.ID, def.ID, def.ID
		}
	}
}

// Get returns the catalog entry for b. Codes outside the catalog wrap.
func Get(b BlockType) *BlockDefinition {
	return &Blocks[b%NumBlockTypes]
}

// Transparency returns the transparency class of b.
func Transparency(b BlockType) int {
	return Blocks[b%NumBlockTypes].Transparency
}

// IsTranslucent reports whether b belongs to a translucency group like
// water or glass. Air is not translucent.
func IsTranslucent(b BlockType) bool {
	return b != BlockTypeAir && Transparency(b) >= ClassAir
}

// Name returns the display name of b.
func Name(b BlockType) string {
	return Blocks[b%NumBlockTypes].Name
}

// Lookup finds a block type by display name.
func Lookup(name string) (BlockType, bool) {
	for _, def := range Blocks {
		if def.Name == name {
			return def.ID, true
		}
	}
	return BlockTypeAir, false
}

// Textures returns the texture indices drawn on the top, bottom and side
// faces of b.
func Textures(b BlockType) (top, bottom, side BlockType) {
	def := Get(b)
	return def.TextureTop, def.TextureBot, def.TextureSide
}

// Next returns the block type after b, wrapping around the catalog.
func Next(b BlockType) BlockType {
	return (b + 1) % NumBlockTypes
}

// Prev returns the block type before b, wrapping around the catalog.
func Prev(b BlockType) BlockType {
	return (b + NumBlockTypes - 1) % NumBlockTypes
}
