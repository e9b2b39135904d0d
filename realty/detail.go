package realty

// DetailResponse mirrors the nested shape of the upstream detail payload.
// Every level may be absent, so each one is a pointer and extraction walks a
// get-or-default chain instead of trusting the structure.
type DetailResponse struct {
	Data *DetailData `json:"data"`
}

type DetailData struct {
	Home *HomeDetail `json:"home"`
}

type HomeDetail struct {
	Photos []Photo `json:"photos"`
}

type Photo struct {
	Href string `json:"href"`
}

// Photos returns the photo collection, defaulting to nil when any nesting
// level is missing.
func (d *DetailResponse) Photos() []Photo {
	if d == nil || d.Data == nil || d.Data.Home == nil {
		return nil
	}
	return d.Data.Home.Photos
}
