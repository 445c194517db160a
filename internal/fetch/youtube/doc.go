// Package youtube fetches episode metadata through the YouTube Data API and
// captions through the public timedtext endpoint.
//
// The Data API lists caption tracks but only serves their content to the
// video owner, so the client picks a track with Captions.List and downloads
// it as WebVTT from timedtext. Manually authored tracks in the configured
// language win over auto-generated ones.
package youtube
