// Package activityservice is the downstream subscriber of the commerce
// services. It routes created events by topic, content filter and priority,
// records one activity entry per event id and keeps a fallback route per
// topic for events no filter recognises.
package activityservice
