// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

package element

import "github.com/openreel/stage/geom"

// DefaultVideoSize is the project resolution assumed when neither the
// element nor the project declares one.
var DefaultVideoSize = geom.Size{Width: 1920, Height: 1080}

// ResolveVideoSize returns the video dimensions to use for projection.
//
// Precedence, highest first:
//  1. the element's own width/height props, when both are positive;
//  2. the project-level video size, when both dimensions are positive;
//  3. DefaultVideoSize.
func ResolveVideoSize(props Props, project geom.Size) geom.Size {
	if props.Width > 0 && props.Height > 0 {
		return geom.Size{Width: props.Width, Height: props.Height}
	}
	if project.Positive() {
		return project
	}
	return DefaultVideoSize
}
