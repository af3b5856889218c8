// Package texture wraps an OpenGL 2D texture whose content is replaced on
// every frame.
//
// Texture parameters are set with the same functional options as the rest of
// the package:
//
//	t := texture.New(ctx,
//		texture.Filter(texture.LinearMipmapLinear, texture.Nearest),
//		texture.Wrap(texture.Repeat, texture.Repeat),
//		texture.FlipY(true))
//	t.Upload(img)
//
package texture
