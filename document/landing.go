package document

// Landing page composer: ordered block management, drag-and-drop
// insertion/reordering and inline text editing over one Form's
// landingConfig. The composer's selection and drag trackers are
// UI-session state and never persist.

// BlockPatch is a partial content update for a block.
type BlockPatch struct {
	Title   *string        `json:"title,omitempty"`
	Content *string        `json:"content,omitempty"`
	Image   *string        `json:"image,omitempty"`
	Items   *[]FeatureItem `json:"items,omitempty"`
}

// StylePatch is a partial update for a block's style. The merge is
// shallow; there are no nested style objects.
type StylePatch struct {
	BackgroundColor *string  `json:"backgroundColor,omitempty"`
	TextColor       *string  `json:"textColor,omitempty"`
	TextAlign       *string  `json:"textAlign,omitempty"`
	Padding         *Padding `json:"padding,omitempty"`
}

// Composer edits the landing blocks of a single form.
type Composer struct {
	Form *Form

	// SelectedBlockID drives which block shows its style toolbar.
	SelectedBlockID string

	draggedIndex int
}

func NewComposer(form *Form) *Composer {
	return &Composer{Form: form, draggedIndex: -1}
}

func (c *Composer) blocks() []LandingBlock {
	return c.Form.Landing.Blocks
}

func (c *Composer) findBlock(id string) *LandingBlock {
	for i := range c.Form.Landing.Blocks {
		if c.Form.Landing.Blocks[i].ID == id {
			return &c.Form.Landing.Blocks[i]
		}
	}
	return nil
}

// AddBlock builds a block with type-specific defaults and inserts it at
// index, or appends when index is out of range. The new block becomes
// the selection.
func (c *Composer) AddBlock(typ BlockType, index int) *LandingBlock {
	block := LandingBlock{
		ID:      newID("b"),
		Type:    typ,
		Title:   "Section Title",
		Content: "Add your content here. Click to edit this text directly.",
		Style: &BlockStyle{
			BackgroundColor: "bg-white",
			TextColor:       "text-slate-900",
			TextAlign:       "left",
			Padding:         PaddingMedium,
		},
	}
	switch typ {
	case BlockHero:
		block.Title = "Welcome Event"
	case BlockFeatures:
		block.Items = []FeatureItem{{Title: "Feature 1", Desc: "Description"}}
	}

	blocks := c.Form.Landing.Blocks
	if index < 0 || index > len(blocks) {
		index = len(blocks)
	}
	blocks = append(blocks, LandingBlock{})
	copy(blocks[index+1:], blocks[index:])
	blocks[index] = block
	c.Form.Landing.Blocks = blocks

	c.SelectedBlockID = block.ID
	return &c.Form.Landing.Blocks[index]
}

// AppendBlock adds a block after the last one.
func (c *Composer) AppendBlock(typ BlockType) *LandingBlock {
	return c.AddBlock(typ, len(c.blocks()))
}

// UpdateBlock shallow-merges patch into the block with the given id.
func (c *Composer) UpdateBlock(id string, patch BlockPatch) bool {
	block := c.findBlock(id)
	if block == nil {
		return false
	}
	if patch.Title != nil {
		block.Title = *patch.Title
	}
	if patch.Content != nil {
		block.Content = *patch.Content
	}
	if patch.Image != nil {
		block.Image = *patch.Image
	}
	if patch.Items != nil {
		block.Items = *patch.Items
	}
	return true
}

// UpdateBlockStyle shallow-merges patch into the block's style.
func (c *Composer) UpdateBlockStyle(id string, patch StylePatch) bool {
	block := c.findBlock(id)
	if block == nil {
		return false
	}
	if block.Style == nil {
		block.Style = &BlockStyle{}
	}
	if patch.BackgroundColor != nil {
		block.Style.BackgroundColor = *patch.BackgroundColor
	}
	if patch.TextColor != nil {
		block.Style.TextColor = *patch.TextColor
	}
	if patch.TextAlign != nil {
		block.Style.TextAlign = *patch.TextAlign
	}
	if patch.Padding != nil {
		block.Style.Padding = *patch.Padding
	}
	return true
}

// RemoveBlock deletes the block and clears the selection if it was
// selected.
func (c *Composer) RemoveBlock(id string) bool {
	for i := range c.Form.Landing.Blocks {
		if c.Form.Landing.Blocks[i].ID == id {
			c.Form.Landing.Blocks = append(c.Form.Landing.Blocks[:i], c.Form.Landing.Blocks[i+1:]...)
			if c.SelectedBlockID == id {
				c.SelectedBlockID = ""
			}
			return true
		}
	}
	return false
}

// Select marks a block as selected. Selection is session state only.
func (c *Composer) Select(id string) {
	if c.findBlock(id) != nil {
		c.SelectedBlockID = id
	}
}

type DragKind string

const (
	// DragNew carries a block type from the palette.
	DragNew DragKind = "new"
	// DragMove carries the source index of an existing block.
	DragMove DragKind = "move"
)

// DragPayload is the tagged payload resolved by the drop handlers. A
// palette drag carries BlockType; a reorder drag carries SourceIndex.
type DragPayload struct {
	Kind        DragKind  `json:"kind"`
	BlockType   BlockType `json:"blockType,omitempty"`
	SourceIndex int       `json:"sourceIndex,omitempty"`
}

// StartPaletteDrag begins a drag of a new block type from the palette.
func (c *Composer) StartPaletteDrag(typ BlockType) DragPayload {
	return DragPayload{Kind: DragNew, BlockType: typ}
}

// StartBlockDrag begins a reorder drag of the block at index.
func (c *Composer) StartBlockDrag(index int) DragPayload {
	c.draggedIndex = index
	return DragPayload{Kind: DragMove, SourceIndex: index}
}

// DropOnCanvas handles a drop on the canvas background: a palette drag
// appends its block type; a move drag is a no-op. The drag tracker
// resets either way.
func (c *Composer) DropOnCanvas(p DragPayload) {
	if p.Kind == DragNew {
		c.AppendBlock(p.BlockType)
	}
	c.draggedIndex = -1
}

// DropOnBlock handles a drop on the block at dropIndex. A palette drag
// inserts before the drop position; a move drag splices the source block
// out and re-inserts it at the drop position, preserving all other
// relative order. Dropping a block on its own index is a no-op. The
// drag tracker resets after every drop regardless of branch.
func (c *Composer) DropOnBlock(p DragPayload, dropIndex int) {
	defer func() { c.draggedIndex = -1 }()

	if p.Kind == DragNew {
		c.AddBlock(p.BlockType, dropIndex)
		return
	}

	src := p.SourceIndex
	blocks := c.Form.Landing.Blocks
	if src == dropIndex || src < 0 || src >= len(blocks) || dropIndex < 0 || dropIndex >= len(blocks) {
		return
	}
	moved := blocks[src]
	blocks = append(blocks[:src], blocks[src+1:]...)
	blocks = append(blocks, LandingBlock{})
	copy(blocks[dropIndex+1:], blocks[dropIndex:])
	blocks[dropIndex] = moved
	c.Form.Landing.Blocks = blocks
}

// EditTarget names the text slot an edit buffer is bound to.
type EditTarget string

const (
	EditTitle     EditTarget = "title"
	EditContent   EditTarget = "content"
	EditItemTitle EditTarget = "item.title"
	EditItemDesc  EditTarget = "item.desc"
)

// EditBuffer implements inline text editing as an explicit buffer: the
// current text is captured on entering edit mode, mutated locally, and
// applied to the block only on Commit. Cancel discards the buffer.
type EditBuffer struct {
	composer  *Composer
	blockID   string
	target    EditTarget
	itemIndex int
	text      string
	active    bool
}

// BeginEdit captures the addressed text into a buffer and returns it.
// For item targets, missing items read as empty text.
func (c *Composer) BeginEdit(blockID string, target EditTarget, itemIndex int) *EditBuffer {
	buf := &EditBuffer{composer: c, blockID: blockID, target: target, itemIndex: itemIndex, active: true}
	if block := c.findBlock(blockID); block != nil {
		switch target {
		case EditTitle:
			buf.text = block.Title
		case EditContent:
			buf.text = block.Content
		case EditItemTitle:
			if itemIndex >= 0 && itemIndex < len(block.Items) {
				buf.text = block.Items[itemIndex].Title
			}
		case EditItemDesc:
			if itemIndex >= 0 && itemIndex < len(block.Items) {
				buf.text = block.Items[itemIndex].Desc
			}
		}
	}
	return buf
}

func (b *EditBuffer) Text() string { return b.text }

func (b *EditBuffer) SetText(text string) {
	if b.active {
		b.text = text
	}
}

// Commit applies the buffer to the model. Empty commits are applied
// verbatim. Committing grows the item list when the edited item does
// not exist yet.
func (b *EditBuffer) Commit() {
	if !b.active {
		return
	}
	b.active = false

	c := b.composer
	switch b.target {
	case EditTitle:
		c.UpdateBlock(b.blockID, BlockPatch{Title: &b.text})
	case EditContent:
		c.UpdateBlock(b.blockID, BlockPatch{Content: &b.text})
	case EditItemTitle, EditItemDesc:
		block := c.findBlock(b.blockID)
		if block == nil || b.itemIndex < 0 {
			return
		}
		items := append([]FeatureItem(nil), block.Items...)
		for len(items) <= b.itemIndex {
			items = append(items, FeatureItem{})
		}
		if b.target == EditItemTitle {
			items[b.itemIndex].Title = b.text
		} else {
			items[b.itemIndex].Desc = b.text
		}
		c.UpdateBlock(b.blockID, BlockPatch{Items: &items})
	}
}

// Cancel discards the buffer without touching the model.
func (b *EditBuffer) Cancel() {
	b.active = false
}
