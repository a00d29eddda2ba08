package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/straja-ai/agegate/internal/videoref"
)

func newVideoIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "videoid <url>",
		Short: "Print the video and playlist ids of a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := videoref.VideoID(args[0])
			playlist, hasPlaylist := videoref.PlaylistID(args[0])
			if !ok && !hasPlaylist {
				return fmt.Errorf("no video or playlist id in %q", args[0])
			}
			out := cmd.OutOrStdout()
			if ok {
				fmt.Fprintf(out, "video_id=%s\n", id)
			}
			if hasPlaylist {
				fmt.Fprintf(out, "playlist_id=%s\n", playlist)
			}
			return nil
		},
	}
}
