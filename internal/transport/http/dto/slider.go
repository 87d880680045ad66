package dto

// AddColorInput is the body of the add-color action.
type AddColorInput struct {
	Name string `json:"name" validate:"required,colorname"`
}

// SetGalleryInput replaces the refs of one color; an empty list clears it.
type SetGalleryInput struct {
	Refs []string `json:"refs" validate:"dive,required,excludesall=0x2C"`
}

type SetColorValueInput struct {
	Color string `json:"color" validate:"required,len=7,hexcolor"`
}

// SliderHashField is the hidden meta box field. A form without it leaves the stored
// config untouched.
const SliderHashField = "wslider-hash"

// SliderSubmitInput is the meta box form submitted with the post. The
// wslider_meta_box_nonce field is checked by the CSRF middleware.
type SliderSubmitInput struct {
	Hash     string `form:"wslider-hash"`
	DraftID  string `form:"wslider_draft_id"`
	Autosave string `form:"autosave"`
}

type ColorBlockResponse struct {
	Name     string   `json:"name"`
	Color    string   `json:"color"`
	Images   string   `json:"images"`
	Refs     []string `json:"refs"`
	Previews []string `json:"previews"`
}

// EditorDraftResponse is the editor working set after an action. Hash is the value
// of the hidden field.
type EditorDraftResponse struct {
	DraftID string               `json:"draft_id"`
	PostID  int64                `json:"post_id"`
	Hash    string               `json:"hash"`
	Colors  []ColorBlockResponse `json:"colors"`
}
