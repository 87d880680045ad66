package web

import (
	"html/template"

	"wslider/internal/domain/models"
	editorsvc "wslider/internal/services/editor_service"
)

const (
	PageLogin   = "login.html"
	PagePosts   = "posts.html"
	PageEditor  = "editor.html"
	PageSlider  = "slider_page.html"
	PagePreview = "preview_page.html"
)

type LoginPage struct {
	CSRF  string
	Next  string
	Email string
	Error string
}

type PostsPage struct {
	Posts []models.Post
}

// EditorPage is the car edit screen with the slider meta box.
type EditorPage struct {
	CSRF  string
	Post  models.Post
	View  *editorsvc.View
	Saved bool
}

type SliderPage struct {
	Post   models.Post
	Widget template.HTML
}

type PreviewPage struct {
	Title  string
	Widget template.HTML
}
