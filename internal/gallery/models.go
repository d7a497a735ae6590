package gallery

type UploadRequest struct {
	Filename    string
	ContentType string
	SizeBytes   int64
}

// RawMetadata is extracted from the RAW file during decoding. Fields the
// decoder cannot supply for a given file are left zero.
type RawMetadata struct {
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	Colors        int       `json:"colors"`
	Camera        string    `json:"camera,omitempty"`
	FilterPattern string    `json:"filterPattern,omitempty"`
	BlackLevel    int       `json:"blackLevel"`
	WhiteLevel    int       `json:"whiteLevel"`
	CameraWB      []float64 `json:"cameraWhitebalance,omitempty"`
	DaylightWB    []float64 `json:"daylightWhitebalance,omitempty"`
}

type ProcessingInfo struct {
	Converted             bool `json:"converted"`
	DisplayMaxDimension   int  `json:"displayMaxDimension,omitempty"`
	DisplayQuality        int  `json:"displayQuality,omitempty"`
	ThumbnailMaxDimension int  `json:"thumbnailMaxDimension"`
	ThumbnailQuality      int  `json:"thumbnailQuality"`
}

// Artifact roles used as keys in UploadResult.URLs.
const (
	RoleRaw       = "raw"
	RoleDisplay   = "display"
	RoleOriginal  = "original"
	RoleThumbnail = "thumbnail"
)

type UploadResult struct {
	Filename   string            `json:"filename"`
	SizeBytes  int64             `json:"sizeBytes"`
	IsRaw      bool              `json:"isRaw"`
	UploadedAt int64             `json:"uploadedAt"`
	ID         string            `json:"id"`
	URLs       map[string]string `json:"urls"`
	Metadata   *RawMetadata      `json:"metadata,omitempty"`
	Processing *ProcessingInfo   `json:"processing,omitempty"`
}

// ImageInfo is the list-view projection of a stored artifact. Derived on
// every list call, never persisted.
type ImageInfo struct {
	Key          string `json:"key"`
	Filename     string `json:"filename"`
	Folder       string `json:"folder"`
	IsRaw        bool   `json:"isRaw"`
	Timestamp    string `json:"timestamp"`
	SizeBytes    int64  `json:"sizeBytes"`
	LastModified int64  `json:"lastModified"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	OriginalURL  string `json:"originalUrl,omitempty"`
	RawURL       string `json:"rawUrl,omitempty"`
}

type ListResponse struct {
	Images []ImageInfo `json:"images"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
}
