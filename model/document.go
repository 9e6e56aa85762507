package model

// DocumentID is the identifier given to new documents.
const DocumentID ObjectID = "2BA3B680-72DD-403D-8CAA-BE5E324D648B"

type ImageCollection struct {
	Images map[string]any `json:"images"`
}

type AssetCollection struct {
	IDBase
	Colors          []*Color         `json:"colors"`
	Gradients       []*Gradient      `json:"gradients"`
	Images          []any            `json:"images"`
	ImageCollection *ImageCollection `json:"imageCollection"`
}

type SymbolContainer struct {
	Objects []any `json:"objects"`
}

// Document is the content of document.json.
type Document struct {
	IDBase
	ColorSpace       int                       `json:"colorSpace"`
	CurrentPageIndex int                       `json:"currentPageIndex"`
	ForeignSymbols   []any                     `json:"foreignSymbols"`
	Assets           *AssetCollection          `json:"assets"`
	LayerTextStyles  *SharedTextStyleContainer `json:"layerTextStyles"`
	LayerStyles      *SharedStyleContainer     `json:"layerStyles"`
	LayerSymbols     *SymbolContainer          `json:"layerSymbols"`
	Pages            []*FileReference          `json:"pages"`
	UserInfo         any                       `json:"userInfo"`
}

// PageIDs returns the identifiers referenced by Pages, in order.
func (d *Document) PageIDs() []ObjectID {
	out := make([]ObjectID, 0, len(d.Pages))
	for _, r := range d.Pages {
		if id, ok := r.PageID(); ok {
			out = append(out, id)
		}
	}
	return out
}

// CreateMeta is the application stamp of meta.json.
type CreateMeta struct {
	CompatibilityVersion int           `json:"compatibilityVersion"`
	Build                int           `json:"build"`
	App                  string        `json:"app"`
	Autosaved            Optional[int] `json:"autosaved"`
	Variant              string        `json:"variant"`
	Commit               string        `json:"commit"`
	Version              int           `json:"version"`
	AppVersion           string        `json:"appVersion"`
}

// Metadata is the content of meta.json.
type Metadata struct {
	CreateMeta
	PagesAndArtboards map[ObjectID]*PageArtboards `json:"pagesAndArtboards"`
	Fonts             []string                    `json:"fonts"`
	Autosaved         int                         `json:"autosaved"`
	Created           *CreateMeta                 `json:"created"`
	SaveHistory       []string                    `json:"saveHistory"`
}

type ArtboardDescription struct {
	Name string `json:"name"`
}

// PageArtboards indexes the artboards of one page by identifier.
type PageArtboards struct {
	Name      string                            `json:"name"`
	Artboards map[ObjectID]*ArtboardDescription `json:"artboards"`
}

// UserEntry is the UI state of one page or of the document.
type UserEntry struct {
	ScrollOrigin                    PointString       `json:"scrollOrigin"`
	ZoomValue                       float64           `json:"zoomValue"`
	PageListHeight                  Optional[float64] `json:"pageListHeight"`
	ExportableLayerSelection        []ObjectID        `json:"exportableLayerSelection"`
	CloudShare                      any               `json:"cloudShare"`
	ExpandedSymbolPathsInSidebar    []any             `json:"expandedSymbolPathsInSidebar"`
	ExpandedTextStylePathsInPopover []any             `json:"expandedTextStylePathsInPopover"`
}

// UserState is the content of user.json.
type UserState map[ObjectID]*UserEntry
