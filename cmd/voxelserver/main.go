// Command voxelserver runs the streaming core standalone: a worker pool
// generating chunks around a moving camera, answering get_mesh queries on
// a fixed tick, periodically evicting chunks that fall outside the load
// radius, and issuing one solid_at query after the loop ends. There is no window or renderer here; this is
// the server-side half of the engine, independent of any glfw game loop.
package main

import (
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mikatschuh/voxeled-engine/internal/chunkid"
	"github.com/mikatschuh/voxeled-engine/internal/config"
	"github.com/mikatschuh/voxeled-engine/internal/frustum"
	"github.com/mikatschuh/voxeled-engine/internal/level"
	"github.com/mikatschuh/voxeled-engine/internal/meshbuf"
	"github.com/mikatschuh/voxeled-engine/internal/profiling"
	"github.com/mikatschuh/voxeled-engine/internal/voxelserver"
	"github.com/mikatschuh/voxeled-engine/internal/workerpool"
	"github.com/mikatschuh/voxeled-engine/internal/worldgen"
)

func getMesh(srv *voxelserver.Server, f frustum.Frustum) meshbuf.Mesh {
	defer profiling.Track("main.GetMesh")()
	return srv.GetMesh(f)
}

func main() {
	lvl := level.New()
	gen := worldgen.NewHeight(1337)
	pool := workerpool.New(config.GetWorkerCount(), config.GetJobQueueCapacity(), lvl, gen)
	defer pool.Shutdown()

	srv := voxelserver.New(lvl, pool)

	camPos := mgl32.Vec3{0, 40, 0}
	camDir := mgl32.Vec3{0, 0, 1}

	lastPrune := time.Now()
	lastReport := time.Now()
	ticks := 0

	for tick := 0; tick < 600; tick++ {
		profiling.ResetFrame()

		f := frustum.Frustum{
			CamPos:          camPos,
			Direction:       camDir,
			Fov:             1.0,
			AspectRatio:     16.0 / 9.0,
			MaxChunks:       config.GetDefaultMaxChunks(),
			MaxDistance:     256,
			FullDetailRange: config.GetFullDetailRange(),
		}

		mesh := getMesh(srv, f)

		if time.Since(lastPrune) > 750*time.Millisecond {
			func() {
				defer profiling.Track("level.EvictOutsideRadius")()
				center := chunkid.IVec3{
					X: int32(camPos[0] / 32),
					Y: int32(camPos[1] / 32),
					Z: int32(camPos[2] / 32),
				}
				lvl.EvictOutsideRadius(0, center, config.GetEvictionRadius())
			}()
			lastPrune = time.Now()
		}

		ticks++
		if time.Since(lastReport) > time.Second {
			log.Printf("tick=%d faces=%d chunks=%d top=%s", tick, mesh.Count(), lvl.Len(), profiling.TopN(3))
			lastReport = time.Now()
		}

		camPos[2] += 0.5 // drift forward to keep streaming new chunks in view

		time.Sleep(16 * time.Millisecond)
	}

	log.Printf("solid_at(0,0,0) = %v", srv.SolidAt(chunkid.IVec3{X: 0, Y: 0, Z: 0}))
}
