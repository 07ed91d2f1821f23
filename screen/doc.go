// Package screen is a terminal host for package motion.
//
// A Stage owns keyed Elements laid out as rows, a Timeline that plays their
// keyframe animations frame by frame, and the before/after hooks that
// bracket every render pass. List ties a Stage to motion.AnimPresence and a
// motion.NodeSet so that rows fade in, glide when reordered and fade out
// when removed. Render draws a Stage with lipgloss.
//
// Like the rest of the render loop, a Stage must only be touched from one
// goroutine. Watchers feed work from other goroutines into a Loop's event
// queue.
package screen
