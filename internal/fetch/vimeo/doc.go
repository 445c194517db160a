// Package vimeo scrapes episode metadata and caption tracks from public Vimeo
// video pages.
//
// A Vimeo page embeds its player configuration as a JavaScript assignment,
// window.playerConfig = {...}. The client locates that script with goquery,
// cuts out the balanced JSON object, and reads the title, duration, owner and
// text tracks from it. Publish date and description come from the page's
// ld+json VideoObject when present.
package vimeo
