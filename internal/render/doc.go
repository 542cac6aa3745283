// Package render turns an HTML fragment into one tall raster image.
//
// A Surface is an isolated rendering context with a fixed viewport width:
// the user fragment is wrapped into a normalized document (BuildDocument),
// loaded into the surface, given time to settle (WaitStable), then captured
// in full at a device scale factor (Rasterize).
//
// BrowserFactory is the production SurfaceFactory. It shares one headless
// Chrome process and opens a fresh incognito context per surface, so cookies,
// storage and styles never cross between requests.
package render
