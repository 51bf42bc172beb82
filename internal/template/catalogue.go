package template

import (
	"github.com/backmassage/mediaconv/internal/media"
)

// Shared accepted-extension sets.
var (
	audioIn      = media.AudioFormats
	videoIn      = media.VideoFormats
	imageIn      = media.ImageFormats
	videoImageIn = concat(media.VideoFormats, media.ImageFormats)
	imageVideoIn = concat(media.ImageFormats, media.VideoFormats)
)

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	return append(append(out, a...), b...)
}

// ProRes encoder settings shared by several templates.
const prores = "-probesize 5000000 -c:v prores_ks"

// Social-media h.264 preset; the variants below differ in CRF and size.
const (
	h264Head = `-c:v libx264`
	h264GOP  = `-bf 2 -flags:v "+cgop" -g 12 -profile:v high -coder ac`
	h264Tail = `-c:a aac -strict 2 -b:a 192k -r:a 48000 -movflags faststart`
)

// catalogue is the built-in template list, in listing order.
var catalogue = []Template{
	New("30_to_24", ".mp4", videoImageIn, `-crf 14 -r 24`),
	New("30_to_24_decimate_frames", ".mov", videoImageIn,
		`-vf "fps=10,split[s0][s1];[s0]palettegen[p];[s1][p]paletteuse" -loop 0`),
	New("30_to_24_motion_detection", ".mov", videoImageIn,
		prores+` -profile:v 3 -q:v 5 -vendor ap10 `+
			`-vf "select='if(gt(scene,0.005),st(1,t),ld(1))',setpts=N/FRAME_RATE/TB,setpts=N/(24*TB),format=yuv422p9le" `+
			`-r 24 -preset veryslow`),
	New("audio_to_aac", ".m4a", []string{".wav", ".mp3", ".m4a"}, `-c:a aac -b:a 192k`),
	New("audio_to_mp3", ".mp3", audioIn, `-acodec libmp3lame -b:a 192k`),
	New("audio_to_wav", ".wav", audioIn, ``),
	New("denoise_normal", ".mov", videoImageIn,
		prores+` -profile:v 3 -q:v 5 -vendor ap10 -vf hqdn3d=10:20:10:20,format=yuv422p9le -preset veryslow`),
	New("extract_alpha", ".mov", videoImageIn,
		prores+` -profile:v 3 -q:v 5 -vendor ap10 -vf format=yuv422p9le -preset veryslow -vf alphaextract,format=yuv420p`),
	New("extract_audio", ".wav", videoIn, ``),
	New("gif_to_png", ".png", []string{".gif"}, `-vsync 0`),
	New("image_seq_to_gif_loop", ".gif", imageIn,
		`-filter_complex "split[s0][s1];[s0]palettegen[p];[s1][p]paletteuse"`),
	New("image_seq_to_gif_bounce", ".gif", imageIn,
		`-filter_complex "[0]reverse[r];[0][r]concat=n=2:v=1:a=0,split[s0][s1];[s0]palettegen[p];[s1][p]paletteuse"`),
	New("image_seq_to_mp4", ".mp4", imageIn, `-vcodec libx264 -vf format=yuv420p -g 1 -crf 15 -an`),
	New("to_mp4", ".mp4", imageVideoIn, `-crf 15 -acodec copy`),
	New("mp4_to_mov", ".mov", []string{".mp4"}, `-crf 15 -acodec copy`),
	New("prores_to_h264_422_100", ".mp4", videoImageIn,
		`-vf format="yuv422p" -c:v libx264 -preset medium -b:v 100M -c:a aac -b:a 192K`),
	New("prores_to_h264_simple", ".mp4", videoImageIn, `-c:v libx264 -b:v 30000k -c:a aac -b:a 192k`),
	New("prores422lt_proxy", ".mov", videoImageIn,
		`-probesize 5000000 -s 1920x1080 -c:v prores_ks -profile:v 1 -q:v 20 -vendor ap10 -vf format=yuv422p9le -preset veryslow`),
	New("prores422lt", ".mov", videoImageIn,
		prores+` -profile:v 1 -q:v 11 -vendor ap10 -vf format=yuv422p9le -threads 16`),
	New("prores422sq", ".mov", videoImageIn,
		prores+` -profile:v 2 -q:v 5 -vendor ap10 -vf format=yuv422p9le -preset veryslow`),
	New("prores422hq", ".mov", videoImageIn,
		prores+` -profile:v 3 -q:v 5 -vendor ap10 -vf format=yuv422p9le -preset veryslow`),
	New("screen_capture", ".mp4", videoImageIn, `-crf 28 -flags:v "+cgop" -g 300 -acodec copy`),
	New("screen_capture2", ".mp4", videoImageIn, `-crf 15 -acodec copy`),
	New("screen_capture2_mp3_audio", ".mp4", videoImageIn, `-crf 15 -acodec libmp3lame -ab 96k`),
	New("screen_capture3", ".mp4", videoImageIn, `-crf 40 -acodec libmp3lame -ab 96k`),
	New("segment", ".mp4", videoImageIn,
		`-f segment -segment_time 00:01:00 -acodec copy -vcodec copy -async 1 -reset_timestamps 1`),
	New("vertical_video_to_letterbox", ".mp4", videoImageIn,
		h264Head+` -crf 25 -bf 2 -flags:v "+cgop" -g 12 `+
			`-vf 'split[original][copy];[copy]scale=ih*16/9:-1,crop=h=iw*9/16,gblur=sigma=20[blurred];[blurred][original]overlay=(main_w-overlay_w)/2:(main_h-overlay_h)/2' `+
			`-profile:v high -coder ac -vf format=yuv420p `+h264Tail),
	New("video_to_gif", ".gif", videoIn,
		`-vf "fps=10,split[s0][s1];[s0]palettegen[p];[s1][p]paletteuse" -loop 0`),
	New("video_to_jpg", ".jpg", videoIn, `-qscale:v 2`),
	New("video_to_png", ".png", videoIn, `-qscale:v 2`),
	New("vr", ".mp4", videoImageIn, `-s 1920x1080 -b:v 4000k`),
	New("vr1080", ".mp4", videoImageIn, `-s 1920x1080 -b:v 4000k`),
	New("vr1440", ".mp4", videoImageIn, `-s 2560x1440 -b:v 6000k`),
	New("youtube", ".mp4", videoImageIn,
		h264Head+` -crf 21 `+h264GOP+` -vf format=yuv420p `+h264Tail),
	New("youtube2", ".mp4", videoImageIn,
		`-c:v libx264 -crf 18 -bf 2 -flags:v "+cgop" -g 12 -preset slow -profile:v high -coder 1 `+
			`-vf format=yuv420p -c:a aac -bf 2 -b:a 192k -profile:a aac_low -r:a 48000 -movflags faststart`),
	New("youtube4K", ".mp4", videoImageIn,
		h264Head+` -crf 18 `+h264GOP+` -vf format=yuv420p `+h264Tail+` -s 3840x2160`),
	New("prores_to_h264_420_100", ".mp4", videoImageIn,
		`-vf format="yuv420p" -c:v libx264 -preset medium -b:v 100M -c:a aac -b:a 192K`),
	New("whatsapp", ".mp4", videoImageIn,
		h264Head+` -crf 25 `+h264GOP+` -vf format=yuv420p `+h264Tail),
	New("whatsapp_720p", ".mp4", videoImageIn,
		h264Head+` -crf 25 `+h264GOP+` -vf "[in] scale=1280:-2, format=yuv420p[out]" `+h264Tail),
}
